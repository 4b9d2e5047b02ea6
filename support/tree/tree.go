// Package tree implements the parse-tree arena with a free list, following
// the node-slot-reuse design described for the parser's output structure.
package tree

import "fmt"

// NodeID identifies a node's slot in a Tree. It stays stable for the slot's
// lifetime; once the node is removed the same value may be reissued by a
// later AddNode call, so callers must not retain a NodeID across a removal
// and expect it to keep denoting the same logical node.
type NodeID int

const noNode = NodeID(-1)

// ErrNodeWasRemoved is returned by any operation on a NodeID whose slot is
// currently on the free list.
var ErrNodeWasRemoved = fmt.Errorf("tree: node was removed")

type node struct {
	inUse       bool
	parent      NodeID
	firstChild  NodeID
	lastChild   NodeID
	prevSibling NodeID
	nextSibling NodeID
	// Kind labels the node with the grammar symbol it was created for
	// (a non-terminal name, or a terminal's matched literal).
	Kind string
	// Payload holds the matched text for leaf (terminal) nodes; it is
	// empty for non-terminal nodes.
	Payload string
}

// Tree is a node arena with a free list, supporting O(1) node creation,
// subtree removal, and slot reuse.
type Tree struct {
	nodes []node
	free  []NodeID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].inUse
}

// AddNode creates a new node with the given kind label under parent (pass
// -1 for a root node), reusing a freed slot when one is available.
func (t *Tree) AddNode(kind string, parent NodeID) (NodeID, error) {
	if parent != noNode && !t.valid(parent) {
		return noNode, ErrNodeWasRemoved
	}

	n := node{
		inUse:       true,
		parent:      parent,
		firstChild:  noNode,
		lastChild:   noNode,
		prevSibling: noNode,
		nextSibling: noNode,
		Kind:        kind,
	}

	var id NodeID
	if len(t.free) > 0 {
		id = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[id] = n
	} else {
		t.nodes = append(t.nodes, n)
		id = NodeID(len(t.nodes) - 1)
	}

	if parent != noNode {
		p := &t.nodes[parent]
		if p.lastChild == noNode {
			p.firstChild = id
			p.lastChild = id
		} else {
			t.nodes[p.lastChild].nextSibling = id
			t.nodes[id].prevSibling = p.lastChild
			p.lastChild = id
		}
	}

	return id, nil
}

// Root creates a node with no parent.
func (t *Tree) Root(kind string) (NodeID, error) {
	return t.AddNode(kind, noNode)
}

// SetPayload records the matched text for a terminal node.
func (t *Tree) SetPayload(id NodeID, payload string) error {
	if !t.valid(id) {
		return ErrNodeWasRemoved
	}
	t.nodes[id].Payload = payload
	return nil
}

// Node returns the node data for id.
func (t *Tree) Node(id NodeID) (*node, error) {
	if !t.valid(id) {
		return nil, ErrNodeWasRemoved
	}
	return &t.nodes[id], nil
}

// Children returns the ids of id's children in order, following the
// first-child/next-sibling chain.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	if !t.valid(id) {
		return nil, ErrNodeWasRemoved
	}
	var out []NodeID
	cur := t.nodes[id].firstChild
	for cur != noNode {
		out = append(out, cur)
		cur = t.nodes[cur].nextSibling
	}
	return out, nil
}

// NthChild returns the nth (0-based) child of id.
func (t *Tree) NthChild(id NodeID, n int) (NodeID, error) {
	children, err := t.Children(id)
	if err != nil {
		return noNode, err
	}
	if n < 0 || n >= len(children) {
		return noNode, fmt.Errorf("tree: child index out of range: %v", n)
	}
	return children[n], nil
}

// GetByPath walks successive NthChild calls, one per path element.
func (t *Tree) GetByPath(id NodeID, path ...int) (NodeID, error) {
	cur := id
	for _, idx := range path {
		next, err := t.NthChild(cur, idx)
		if err != nil {
			return noNode, err
		}
		cur = next
	}
	return cur, nil
}

// RemoveBranch unlinks the subtree rooted at id from its parent and
// siblings and returns every freed slot to the free list.
func (t *Tree) RemoveBranch(id NodeID) error {
	if !t.valid(id) {
		return ErrNodeWasRemoved
	}

	n := t.nodes[id]
	if n.parent != noNode {
		p := &t.nodes[n.parent]
		if p.firstChild == id {
			p.firstChild = n.nextSibling
		}
		if p.lastChild == id {
			p.lastChild = n.prevSibling
		}
	}
	if n.prevSibling != noNode {
		t.nodes[n.prevSibling].nextSibling = n.nextSibling
	}
	if n.nextSibling != noNode {
		t.nodes[n.nextSibling].prevSibling = n.prevSibling
	}

	var descendants []NodeID
	t.collect(id, &descendants)
	for _, d := range descendants {
		t.nodes[d] = node{inUse: false}
		t.free = append(t.free, d)
	}
	return nil
}

func (t *Tree) collect(id NodeID, out *[]NodeID) {
	*out = append(*out, id)
	cur := t.nodes[id].firstChild
	for cur != noNode {
		next := t.nodes[cur].nextSibling
		t.collect(cur, out)
		cur = next
	}
}

// LeafText returns the concatenation of the payloads of id's leaf
// descendants (or id's own payload if id is itself a leaf) in pre-order —
// the text actually consumed under id.
func (t *Tree) LeafText(id NodeID) (string, error) {
	if !t.valid(id) {
		return "", ErrNodeWasRemoved
	}
	n := t.nodes[id]
	if n.firstChild == noNode {
		return n.Payload, nil
	}
	var out string
	cur := n.firstChild
	for cur != noNode {
		s, err := t.LeafText(cur)
		if err != nil {
			return "", err
		}
		out += s
		cur = t.nodes[cur].nextSibling
	}
	return out, nil
}
