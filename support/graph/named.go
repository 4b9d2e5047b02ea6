package graph

// Named wraps a Graph[T] with a lookup from an external key (here, the
// non-terminal's element index) to its node, so callers never have to track
// NodeIndex values themselves.
type Named[K comparable, T any] struct {
	g       *Graph[T]
	key2idx map[K]NodeIndex
}

// NewNamed creates an empty named graph.
func NewNamed[K comparable, T any]() *Named[K, T] {
	return &Named[K, T]{
		g:       New[T](),
		key2idx: map[K]NodeIndex{},
	}
}

// AddNode registers a node under key if it doesn't already exist, returning
// its index either way.
func (n *Named[K, T]) AddNode(key K, zero T) NodeIndex {
	if idx, ok := n.key2idx[key]; ok {
		return idx
	}
	idx := n.g.AddNode(zero)
	n.key2idx[key] = idx
	return idx
}

// Lookup resolves a key to its node index.
func (n *Named[K, T]) Lookup(key K) (NodeIndex, bool) {
	idx, ok := n.key2idx[key]
	return idx, ok
}

// Payload returns the payload registered under key.
func (n *Named[K, T]) Payload(key K) (*T, bool) {
	idx, ok := n.key2idx[key]
	if !ok {
		return nil, false
	}
	p, err := n.g.Payload(idx)
	if err != nil {
		return nil, false
	}
	return p, true
}

// AddEdge adds an edge between two registered keys.
func (n *Named[K, T]) AddEdge(src, dst K) bool {
	si, ok := n.key2idx[src]
	if !ok {
		return false
	}
	di, ok := n.key2idx[dst]
	if !ok {
		return false
	}
	return n.g.AddEdge(si, di) == nil
}

// Successors returns the keys reachable by one outgoing edge from key.
func (n *Named[K, T]) Successors(key K) []K {
	idx, ok := n.key2idx[key]
	if !ok {
		return nil
	}
	var out []K
	targets := n.g.Successors(idx)
	if len(targets) == 0 {
		return nil
	}
	idx2key := make(map[NodeIndex]K, len(n.key2idx))
	for k, i := range n.key2idx {
		idx2key[i] = k
	}
	for _, t := range targets {
		out = append(out, idx2key[t])
	}
	return out
}

// Keys returns every registered key, in no particular order.
func (n *Named[K, T]) Keys() []K {
	keys := make([]K, 0, len(n.key2idx))
	for k := range n.key2idx {
		keys = append(keys, k)
	}
	return keys
}
