// Package graph implements the strict directed graph the scanner and walker
// populate: nodes and edges with Graphviz-style attributes, grouped into
// nested cluster subgraphs. "Strict" means adding a node or edge that already
// exists is a no-op, never a duplicate.
package graph

import (
	"sort"
)

// Attrs holds Graphviz attributes for a node, edge, or subgraph
type Attrs map[string]string

// clone copies attrs so callers can reuse style maps without aliasing
func (a Attrs) clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// SortedKeys returns attribute names in deterministic order
func (a Attrs) SortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Node is one graph vertex. Keys are repo-relative file paths, roles/<name>
// paths, or synthetic IDs for task markers. Nodes are immutable once added.
type Node struct {
	Key   string
	Label string
	Attrs Attrs
}

// Edge is a directed link between two node keys. Identity is the (From, To)
// pair; the graph is strict, so a second identical edge is merged.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

type edgeKey struct {
	from, to string
}

// Subgraph is a named cluster of nodes with optional child clusters.
// A subgraph for a given key is created at most once per graph.
type Subgraph struct {
	Key   string
	Label string
	Attrs Attrs

	owner    *Graph
	nodes    []*Node // insertion order; FirstNode anchors back-edges
	children []*Subgraph
}

// Graph is the root container. It owns the global node/edge registries and
// the subgraph tree; subgraphs share the registries so deduplication is
// graph-wide regardless of where an add happens.
type Graph struct {
	Label string
	Attrs Attrs
	// NodeDefaults are emitted as node [...] defaults in DOT output
	NodeDefaults Attrs

	nodes     map[string]*Node
	nodeOrder []string
	edges     map[edgeKey]*Edge
	edgeOrder []edgeKey
	subgraphs map[string]*Subgraph

	rootNodes []*Node // nodes added directly to the graph, outside any cluster
	rootSubs  []*Subgraph
}

// New creates an empty strict directed graph
func New(label string, attrs Attrs) *Graph {
	return &Graph{
		Label:     label,
		Attrs:     attrs.clone(),
		nodes:     make(map[string]*Node),
		edges:     make(map[edgeKey]*Edge),
		subgraphs: make(map[string]*Subgraph),
	}
}

// AddNode registers a node at the graph root. No-op if the key exists.
func (g *Graph) AddNode(key, label string, attrs Attrs) *Node {
	if n, ok := g.nodes[key]; ok {
		return n
	}
	n := g.register(key, label, attrs)
	g.rootNodes = append(g.rootNodes, n)
	return n
}

func (g *Graph) register(key, label string, attrs Attrs) *Node {
	n := &Node{Key: key, Label: label, Attrs: attrs.clone()}
	g.nodes[key] = n
	g.nodeOrder = append(g.nodeOrder, key)
	return n
}

// HasNode reports whether a node with the given key exists anywhere in the graph
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Node returns the node for key, or nil
func (g *Graph) Node(key string) *Node {
	return g.nodes[key]
}

// Nodes returns every node in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, key := range g.nodeOrder {
		out = append(out, g.nodes[key])
	}
	return out
}

// RootNodes returns nodes that belong to no cluster, in insertion order
func (g *Graph) RootNodes() []*Node {
	return g.rootNodes
}

// AddEdge links two node keys. No-op if the (from, to) pair exists.
// Endpoints need not exist as nodes yet; the renderer treats bare keys the
// way Graphviz does (an implicit node), but every walker creates its nodes
// before or alongside its edges.
func (g *Graph) AddEdge(from, to string, attrs Attrs) *Edge {
	k := edgeKey{from: from, to: to}
	if e, ok := g.edges[k]; ok {
		return e
	}
	e := &Edge{From: from, To: to, Attrs: attrs.clone()}
	g.edges[k] = e
	g.edgeOrder = append(g.edgeOrder, k)
	return e
}

// HasEdge reports whether an edge (from, to) exists
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[edgeKey{from: from, to: to}]
	return ok
}

// Edges returns every edge in insertion order
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, k := range g.edgeOrder {
		out = append(out, g.edges[k])
	}
	return out
}

// NodeCount returns the number of distinct nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// SubgraphCount returns the number of distinct subgraphs in the whole tree
func (g *Graph) SubgraphCount() int {
	return len(g.subgraphs)
}

// Subgraph returns the subgraph for key, creating it as a direct child of the
// root when absent. A second request for the same key returns the existing
// subgraph untouched, wherever it lives in the tree.
func (g *Graph) Subgraph(key, label string, attrs Attrs) *Subgraph {
	if sub, ok := g.subgraphs[key]; ok {
		return sub
	}
	sub := &Subgraph{Key: key, Label: label, Attrs: attrs.clone(), owner: g}
	g.subgraphs[key] = sub
	g.rootSubs = append(g.rootSubs, sub)
	return sub
}

// FindSubgraph returns the subgraph for key from anywhere in the tree, or nil
func (g *Graph) FindSubgraph(key string) *Subgraph {
	return g.subgraphs[key]
}

// RootSubgraphs returns the root's direct child clusters in insertion order
func (g *Graph) RootSubgraphs() []*Subgraph {
	return g.rootSubs
}

// AddNode registers a node inside this cluster. No-op if the key exists
// anywhere in the graph; a node belongs to the cluster that created it.
func (s *Subgraph) AddNode(key, label string, attrs Attrs) *Node {
	if n, ok := s.owner.nodes[key]; ok {
		return n
	}
	n := s.owner.register(key, label, attrs)
	s.nodes = append(s.nodes, n)
	return n
}

// AddEdge links two node keys on the owning graph. Cluster membership of an
// edge is presentation-neutral in DOT, so all edges live on the root.
func (s *Subgraph) AddEdge(from, to string, attrs Attrs) *Edge {
	return s.owner.AddEdge(from, to, attrs)
}

// Subgraph returns the child subgraph for key, creating it under this cluster
// when absent anywhere in the graph.
func (s *Subgraph) Subgraph(key, label string, attrs Attrs) *Subgraph {
	if sub, ok := s.owner.subgraphs[key]; ok {
		return sub
	}
	sub := &Subgraph{Key: key, Label: label, Attrs: attrs.clone(), owner: s.owner}
	s.owner.subgraphs[key] = sub
	s.children = append(s.children, sub)
	return sub
}

// Nodes returns this cluster's own nodes in insertion order
func (s *Subgraph) Nodes() []*Node {
	return s.nodes
}

// Children returns nested clusters in insertion order
func (s *Subgraph) Children() []*Subgraph {
	return s.children
}

// FirstNode returns the first node added to this cluster, or nil when empty.
// The walker links a caller's include marker to the first node of an
// already-expanded file instead of expanding it again.
func (s *Subgraph) FirstNode() *Node {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[0]
}
