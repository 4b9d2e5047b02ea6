// Package graph implements the intrusive singly-linked adjacency graph used
// by the set analyzer to propagate FOLLOW sets over non-terminal
// dependencies.
package graph

import "fmt"

// NodeIndex identifies a node in a Graph.
type NodeIndex int

// EdgeID is a caller-assigned identifier on an edge, used to keep a node's
// outgoing edge list in decreasing-id order so lookups can early-exit.
type EdgeID int

type edgeIndex int

const noEdge = edgeIndex(-1)

type nodeData[T any] struct {
	firstOutgoingEdge edgeIndex
	payload           T
}

type edgeData struct {
	target           NodeIndex
	id                EdgeID
	nextOutgoingEdge edgeIndex
}

// Graph is a directed graph with a dense node vector and an intrusive
// singly-linked outgoing-edge list per node, mirroring the adjacency-list
// design used for FOLLOW-set propagation.
type Graph[T any] struct {
	nodes []nodeData[T]
	edges []edgeData
}

// New creates an empty graph.
func New[T any]() *Graph[T] {
	return &Graph[T]{}
}

// AddNode appends a new node carrying payload and returns its index.
func (g *Graph[T]) AddNode(payload T) NodeIndex {
	g.nodes = append(g.nodes, nodeData[T]{firstOutgoingEdge: noEdge, payload: payload})
	return NodeIndex(len(g.nodes) - 1)
}

// Payload returns a pointer to the node's payload so callers can mutate the
// set stored there in place.
func (g *Graph[T]) Payload(n NodeIndex) (*T, error) {
	if int(n) < 0 || int(n) >= len(g.nodes) {
		return nil, fmt.Errorf("graph: node index out of bounds: %v", n)
	}
	return &g.nodes[n].payload, nil
}

// AddEdge prepends an edge from src to dst onto src's outgoing edge list.
func (g *Graph[T]) AddEdge(src, dst NodeIndex) error {
	if int(src) < 0 || int(src) >= len(g.nodes) {
		return fmt.Errorf("graph: node index out of bounds: %v", src)
	}
	g.edges = append(g.edges, edgeData{
		target:           dst,
		nextOutgoingEdge: g.nodes[src].firstOutgoingEdge,
	})
	g.nodes[src].firstOutgoingEdge = edgeIndex(len(g.edges) - 1)
	return nil
}

// TryAddEdgeWithID inserts an edge from src to dst tagged with id, keeping
// src's outgoing edge list in decreasing-id order. It refuses a duplicate
// id and reports ok=false in that case instead of mutating the list.
func (g *Graph[T]) TryAddEdgeWithID(src, dst NodeIndex, id EdgeID) (ok bool, err error) {
	if int(src) < 0 || int(src) >= len(g.nodes) {
		return false, fmt.Errorf("graph: node index out of bounds: %v", src)
	}

	// Walk the existing list to find the insertion point and reject
	// duplicates; the list is maintained in decreasing id order.
	prev := noEdge
	cur := g.nodes[src].firstOutgoingEdge
	for cur != noEdge {
		e := g.edges[cur]
		if e.id == id {
			return false, nil
		}
		if e.id < id {
			break
		}
		prev = cur
		cur = e.nextOutgoingEdge
	}

	g.edges = append(g.edges, edgeData{target: dst, id: id, nextOutgoingEdge: cur})
	newIdx := edgeIndex(len(g.edges) - 1)
	if prev == noEdge {
		g.nodes[src].firstOutgoingEdge = newIdx
	} else {
		g.edges[prev].nextOutgoingEdge = newIdx
	}
	return true, nil
}

// FindEdgeByID walks src's outgoing edges looking for id, relying on the
// decreasing-id invariant maintained by TryAddEdgeWithID to early-exit.
func (g *Graph[T]) FindEdgeByID(src NodeIndex, id EdgeID) (NodeIndex, bool) {
	if int(src) < 0 || int(src) >= len(g.nodes) {
		return 0, false
	}
	cur := g.nodes[src].firstOutgoingEdge
	for cur != noEdge {
		e := g.edges[cur]
		if e.id == id {
			return e.target, true
		}
		if e.id < id {
			return 0, false
		}
		cur = e.nextOutgoingEdge
	}
	return 0, false
}

// Successors returns the target of each outgoing edge from n, in list order
// (most-recently-added first, since AddEdge prepends). A target reached by
// several edges appears once per edge.
func (g *Graph[T]) Successors(n NodeIndex) []NodeIndex {
	if int(n) < 0 || int(n) >= len(g.nodes) {
		return nil
	}
	var out []NodeIndex
	cur := g.nodes[n].firstOutgoingEdge
	for cur != noEdge {
		out = append(out, g.edges[cur].target)
		cur = g.edges[cur].nextOutgoingEdge
	}
	return out
}

// NodeCount reports the number of nodes in the graph.
func (g *Graph[T]) NodeCount() int {
	return len(g.nodes)
}
