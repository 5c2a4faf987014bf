package rdg

import (
	"fmt"
	"os"
	"strings"

	"github.com/kestrel3d/rdgo/internal/dag"
)

// passKindDotColor names the Graphviz fill color for a pass rectangle,
// recovered from original_source's rdg_node.h per-kind color table (§4
// SUPPLEMENTED FEATURES, §6.2).
func passKindDotColor(k PassKind) string {
	switch k {
	case PassKindRender:
		return "orange"
	case PassKindCompute:
		return "yellow"
	case PassKindCopy:
		return "lightgrey"
	case PassKindPresent:
		return "lightblue"
	case PassKindRayTracing:
		return "violet"
	default:
		return "white"
	}
}

// edgeRoleLabel maps an edge's role to one of the six labels §6.2 names.
// AsOutputIndirectDraw has no dedicated label in the spec's enumeration; it
// is grouped under UAV as the closest analogue (a GPU-written buffer a pass
// produces for a later consumer), same as AsOutputRead/AsOutputReadWrite.
func edgeRoleLabel(r EdgeRole) string {
	switch {
	case r.Has(AsColor):
		return "Color"
	case r.Has(AsDepthStencil):
		return "Depth"
	case r.Has(AsShaderRead):
		return "SRV"
	case r.Has(AsShaderReadWrite), r.Has(AsOutputRead), r.Has(AsOutputReadWrite), r.Has(AsOutputIndirectDraw):
		return "UAV"
	case r.Has(AsTransferSrc), r.Has(AsTransferDst):
		return "Transfer"
	case r.Has(AsPresent):
		return "Present"
	default:
		return ""
	}
}

// ExportGraphviz writes the current graph to path as a Graphviz .dot file
// (§6.2): pass rectangles colored by kind, green texture boxes, cyan buffer
// cylinders, and edges colored red for writes / blue for reads and labeled
// with their usage role.
func (b *Builder) ExportGraphviz(path string) error {
	var sb strings.Builder
	sb.WriteString("digraph rdg {\n")
	sb.WriteString("  rankdir=LR;\n")

	for _, node := range b.graph.Nodes() {
		switch n := node.(type) {
		case *passNode:
			fmt.Fprintf(&sb, "  n%d [label=%q shape=rectangle style=filled fillcolor=%s];\n",
				n.id, n.name, passKindDotColor(n.kind))
		case *textureNode:
			fmt.Fprintf(&sb, "  n%d [label=%q shape=box style=filled fillcolor=green];\n", n.id, n.name)
		case *bufferNode:
			fmt.Fprintf(&sb, "  n%d [label=%q shape=cylinder style=filled fillcolor=cyan];\n", n.id, n.name)
		}
	}

	for _, node := range b.graph.Nodes() {
		for _, e := range b.graph.OutEdges(node.ID()) {
			writeDotEdge(&sb, e)
		}
	}

	sb.WriteString("}\n")
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func writeDotEdge(sb *strings.Builder, e dag.Edge) {
	switch edge := e.(type) {
	case *TextureEdge:
		color, label := "blue", edgeRoleLabel(edge.role)
		if edge.isOutput() {
			color = "red"
		}
		fmt.Fprintf(sb, "  n%d -> n%d [color=%s label=%q];\n", edge.From(), edge.To(), color, label)
	case *BufferEdge:
		color, label := "blue", edgeRoleLabel(edge.role)
		if edge.isOutput() {
			color = "red"
		}
		fmt.Fprintf(sb, "  n%d -> n%d [color=%s label=%q];\n", edge.From(), edge.To(), color, label)
	}
}
