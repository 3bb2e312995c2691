// Package render serializes a populated graph to Graphviz DOT and renders
// images from it. The graph model already carries final attribute maps, so
// rendering is a serialization pass, not a styling pass.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/ansigraph/ansigraph/errors"
	"github.com/ansigraph/ansigraph/graph"
)

// ToDOT serializes the graph as a strict directed Graphviz document.
// Clusters nest the way the model nests; all edges are emitted at the root,
// which is equivalent in DOT. Attribute order is deterministic.
func ToDOT(g *graph.Graph) []byte {
	var b strings.Builder
	b.WriteString("strict digraph {\n")

	writeAttrLines(&b, 1, g.Attrs)
	if g.Label != "" {
		writeAttrLines(&b, 1, graph.Attrs{"label": g.Label})
	}
	if len(g.NodeDefaults) > 0 {
		indent(&b, 1)
		b.WriteString("node ")
		writeAttrList(&b, g.NodeDefaults)
		b.WriteString(";\n")
	}

	for _, sub := range g.RootSubgraphs() {
		writeSubgraph(&b, 1, sub)
	}
	for _, n := range g.RootNodes() {
		writeNode(&b, 1, n)
	}
	for _, e := range g.Edges() {
		writeEdge(&b, 1, e)
	}

	b.WriteString("}\n")
	return []byte(b.String())
}

// WriteDOT serializes the graph and writes it to path.
func WriteDOT(g *graph.Graph, path string) error {
	if err := os.WriteFile(path, ToDOT(g), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func writeSubgraph(b *strings.Builder, depth int, sub *graph.Subgraph) {
	indent(b, depth)
	fmt.Fprintf(b, "subgraph %s {\n", quote(sub.Key))

	writeAttrLines(b, depth+1, sub.Attrs)
	indent(b, depth+1)
	fmt.Fprintf(b, "label=%s;\n", quote(sub.Label))

	for _, child := range sub.Children() {
		writeSubgraph(b, depth+1, child)
	}
	for _, n := range sub.Nodes() {
		writeNode(b, depth+1, n)
	}

	indent(b, depth)
	b.WriteString("}\n")
}

func writeNode(b *strings.Builder, depth int, n *graph.Node) {
	indent(b, depth)
	b.WriteString(quote(n.Key))
	attrs := graph.Attrs{"label": n.Label}
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	b.WriteString(" ")
	writeAttrList(b, attrs)
	b.WriteString(";\n")
}

func writeEdge(b *strings.Builder, depth int, e *graph.Edge) {
	indent(b, depth)
	fmt.Fprintf(b, "%s -> %s", quote(e.From), quote(e.To))
	if len(e.Attrs) > 0 {
		b.WriteString(" ")
		writeAttrList(b, e.Attrs)
	}
	b.WriteString(";\n")
}

// writeAttrLines emits attrs one per line, for graph and cluster scope
func writeAttrLines(b *strings.Builder, depth int, attrs graph.Attrs) {
	for _, k := range attrs.SortedKeys() {
		indent(b, depth)
		fmt.Fprintf(b, "%s=%s;\n", k, quote(attrs[k]))
	}
}

// writeAttrList emits attrs as a bracketed list, for nodes and edges
func writeAttrList(b *strings.Builder, attrs graph.Attrs) {
	b.WriteString("[")
	for i, k := range attrs.SortedKeys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s=%s", k, quote(attrs[k]))
	}
	b.WriteString("]")
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("\t", depth))
}

// quote renders a DOT double-quoted string. Labels carry newlines (play
// nodes); DOT wants them as the \n escape.
func quote(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
	)
	return `"` + r.Replace(s) + `"`
}
