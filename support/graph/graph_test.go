package graph

import "testing"

func TestAddEdgeAndSuccessors(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")

	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("AddEdge(a,b) error: %v", err)
	}
	if err := g.AddEdge(a, c); err != nil {
		t.Fatalf("AddEdge(a,c) error: %v", err)
	}

	succ := g.Successors(a)
	if len(succ) != 2 {
		t.Fatalf("Successors(a) = %v; want 2 entries", succ)
	}
	// AddEdge prepends, so c (added second) comes first.
	if succ[0] != c || succ[1] != b {
		t.Fatalf("Successors(a) = %v; want [c, b]", succ)
	}
}

func TestPayloadMutation(t *testing.T) {
	g := New[int]()
	n := g.AddNode(1)
	p, err := g.Payload(n)
	if err != nil {
		t.Fatalf("Payload() error: %v", err)
	}
	*p = 42
	p2, _ := g.Payload(n)
	if *p2 != 42 {
		t.Fatalf("Payload() after mutation = %d; want 42", *p2)
	}
}

func TestTryAddEdgeWithIDRejectsDuplicate(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	ok, err := g.TryAddEdgeWithID(a, b, 1)
	if err != nil || !ok {
		t.Fatalf("first TryAddEdgeWithID = %v, %v; want true, nil", ok, err)
	}
	ok, err = g.TryAddEdgeWithID(a, b, 1)
	if err != nil {
		t.Fatalf("second TryAddEdgeWithID error: %v", err)
	}
	if ok {
		t.Fatalf("second TryAddEdgeWithID with duplicate id reported ok=true")
	}
}

func TestFindEdgeByID(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")

	if ok, err := g.TryAddEdgeWithID(a, b, 5); err != nil || !ok {
		t.Fatalf("TryAddEdgeWithID(a,b,5) = %v, %v", ok, err)
	}
	if ok, err := g.TryAddEdgeWithID(a, c, 3); err != nil || !ok {
		t.Fatalf("TryAddEdgeWithID(a,c,3) = %v, %v", ok, err)
	}

	target, ok := g.FindEdgeByID(a, 3)
	if !ok || target != c {
		t.Fatalf("FindEdgeByID(a,3) = %v, %v; want c, true", target, ok)
	}
	if _, ok := g.FindEdgeByID(a, 9); ok {
		t.Fatalf("FindEdgeByID(a,9) reported ok=true for an absent id")
	}
}

func TestNamedGraphRoundTrip(t *testing.T) {
	n := NewNamed[string, int]()
	n.AddNode("x", 0)
	n.AddNode("y", 0)

	if ok := n.AddEdge("x", "y"); !ok {
		t.Fatalf("AddEdge(x,y) = false")
	}
	succ := n.Successors("x")
	if len(succ) != 1 || succ[0] != "y" {
		t.Fatalf("Successors(x) = %v; want [y]", succ)
	}

	p, ok := n.Payload("x")
	if !ok {
		t.Fatalf("Payload(x) not found")
	}
	*p = 7
	p2, _ := n.Payload("x")
	if *p2 != 7 {
		t.Fatalf("Payload(x) after mutation = %d; want 7", *p2)
	}

	if _, ok := n.Lookup("z"); ok {
		t.Fatalf("Lookup(z) unexpectedly found")
	}
}
