package tree

import "testing"

func TestAddNodeAndChildren(t *testing.T) {
	tr := New()
	root, err := tr.Root("start")
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	a, err := tr.AddNode("a", root)
	if err != nil {
		t.Fatalf("AddNode(a) error: %v", err)
	}
	b, err := tr.AddNode("b", root)
	if err != nil {
		t.Fatalf("AddNode(b) error: %v", err)
	}

	children, err := tr.Children(root)
	if err != nil {
		t.Fatalf("Children() error: %v", err)
	}
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("Children() = %v; want [%v, %v]", children, a, b)
	}
}

func TestLeafText(t *testing.T) {
	tr := New()
	root, _ := tr.Root("sum")
	lhs, _ := tr.AddNode("digit", root)
	tr.SetPayload(lhs, "1")
	op, _ := tr.AddNode("op", root)
	tr.SetPayload(op, "+")
	rhs, _ := tr.AddNode("digit", root)
	tr.SetPayload(rhs, "2")

	text, err := tr.LeafText(root)
	if err != nil {
		t.Fatalf("LeafText() error: %v", err)
	}
	if text != "1+2" {
		t.Fatalf("LeafText() = %q; want %q", text, "1+2")
	}
}

func TestRemoveBranchFreesSlots(t *testing.T) {
	tr := New()
	root, _ := tr.Root("start")
	child, _ := tr.AddNode("child", root)
	grandchild, _ := tr.AddNode("grandchild", child)

	if err := tr.RemoveBranch(child); err != nil {
		t.Fatalf("RemoveBranch() error: %v", err)
	}

	if _, err := tr.Node(child); err != ErrNodeWasRemoved {
		t.Fatalf("Node(child) after removal = %v; want ErrNodeWasRemoved", err)
	}
	if _, err := tr.Node(grandchild); err != ErrNodeWasRemoved {
		t.Fatalf("Node(grandchild) after removal = %v; want ErrNodeWasRemoved", err)
	}

	children, err := tr.Children(root)
	if err != nil {
		t.Fatalf("Children(root) error: %v", err)
	}
	if len(children) != 0 {
		t.Fatalf("Children(root) after removal = %v; want none", children)
	}

	// The freed slot should be reused by the next AddNode call.
	reused, err := tr.AddNode("new", root)
	if err != nil {
		t.Fatalf("AddNode() after removal error: %v", err)
	}
	if reused != child && reused != grandchild {
		t.Fatalf("AddNode() after removal did not reuse a freed slot: got %v", reused)
	}
}

func TestGetByPath(t *testing.T) {
	tr := New()
	root, _ := tr.Root("start")
	a, _ := tr.AddNode("a", root)
	tr.AddNode("b", root)
	leaf, _ := tr.AddNode("leaf", a)

	got, err := tr.GetByPath(root, 0, 0)
	if err != nil {
		t.Fatalf("GetByPath() error: %v", err)
	}
	if got != leaf {
		t.Fatalf("GetByPath(root, 0, 0) = %v; want %v", got, leaf)
	}
}
