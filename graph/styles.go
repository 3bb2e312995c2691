package graph

// Style tables for every semantic category the walkers emit. Color scheme:
// blue for role links, red for dependencies and problems, orange for task
// flow, green for plays and the entry point.

// RootAttrs returns the root graph attributes shared by both drivers; the
// title label itself lives on Graph.Label.
func RootAttrs(rankDir string) Attrs {
	return Attrs{
		"labelloc": "t",
		"fontname": "bold",
		"rankdir":  rankDir,
	}
}

// DefaultNodeAttrs returns node defaults applied to the whole diagram
func DefaultNodeAttrs() Attrs {
	return Attrs{
		"shape":     "box",
		"style":     "rounded, filled",
		"color":     "black",
		"fillcolor": "white",
	}
}

// SubgraphAttrs returns the standard cluster style
func SubgraphAttrs() Attrs {
	return Attrs{
		"fontname":  "bold",
		"color":     "black",
		"style":     "filled",
		"fillcolor": "lightgrey",
		"labeljust": "l",
	}
}

// EntrySubgraphAttrs marks the walk's entry-point playbook
func EntrySubgraphAttrs() Attrs {
	a := SubgraphAttrs()
	a["fillcolor"] = "green"
	return a
}

// UnsupportedSubgraphAttrs marks folders for platforms this repo no longer supports
func UnsupportedSubgraphAttrs() Attrs {
	a := SubgraphAttrs()
	a["color"] = "red"
	a["style"] = "filled, dashed"
	return a
}

// RoleClusterAttrs marks the roles directory cluster
func RoleClusterAttrs() Attrs {
	a := SubgraphAttrs()
	a["color"] = "blue"
	return a
}

// StubNodeAttrs marks a dangling include target
func StubNodeAttrs() Attrs {
	return Attrs{"color": "red"}
}

// PlayNodeAttrs marks a play definition
func PlayNodeAttrs() Attrs {
	return Attrs{"color": "green"}
}

// RoleNodeAttrs marks a role reference
func RoleNodeAttrs() Attrs {
	return Attrs{"color": "blue"}
}

// RoleEdgeAttrs marks a role-invocation link
func RoleEdgeAttrs() Attrs {
	return Attrs{"color": "blue"}
}

// DepNodeAttrs marks a role-dependency node
func DepNodeAttrs() Attrs {
	return Attrs{"color": "red"}
}

// DepEdgeAttrs marks a role-dependency link. The primary chain is drawn in
// blue so the direct path reads apart from secondary dependencies.
func DepEdgeAttrs(primary bool) Attrs {
	if primary {
		return Attrs{"color": "blue"}
	}
	return Attrs{"color": "red"}
}

// TaskNodeAttrs marks a task or include marker inside a play
func TaskNodeAttrs() Attrs {
	return Attrs{"color": "orange"}
}

// TaskEdgeAttrs marks sequential task flow
func TaskEdgeAttrs() Attrs {
	return Attrs{"color": "orange"}
}
