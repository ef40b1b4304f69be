// Package depgraph orders compiled content types so that every type is
// created after the types its fields reference.
package depgraph

import (
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
)

// Node is one content type and its references
type Node struct {
	Input      ir.ContentTypeInput
	DependsOn  []string // apiIds this type references
	DependedBy []string // apiIds referencing this type
}

// Graph tracks references between content types. Node order follows the
// order the inputs were given in.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// New builds the reference graph of inputs. References to apiIds that are
// not part of inputs carry no edge.
func New(inputs []ir.ContentTypeInput) *Graph {
	g := &Graph{
		nodes: make(map[string]*Node, len(inputs)),
		order: make([]string, 0, len(inputs)),
	}

	for _, input := range inputs {
		if _, exists := g.nodes[input.APIID]; exists {
			continue
		}
		g.nodes[input.APIID] = &Node{
			Input:      input,
			DependsOn:  make([]string, 0),
			DependedBy: make([]string, 0),
		}
		g.order = append(g.order, input.APIID)
	}

	for _, apiID := range g.order {
		for _, ref := range g.nodes[apiID].Input.References() {
			g.addDependency(apiID, ref)
		}
	}

	return g
}

// addDependency records that from references to
func (g *Graph) addDependency(from, to string) {
	target, exists := g.nodes[to]
	if !exists {
		return
	}
	source := g.nodes[from]

	if !contains(source.DependsOn, to) {
		source.DependsOn = append(source.DependsOn, to)
	}
	if !contains(target.DependedBy, from) {
		target.DependedBy = append(target.DependedBy, from)
	}
}

// Dependents returns the apiIds of content types referencing the given one
func (g *Graph) Dependents(apiID string) []string {
	if node, exists := g.nodes[apiID]; exists {
		result := make([]string, len(node.DependedBy))
		copy(result, node.DependedBy)
		return result
	}
	return []string{}
}

// TransitiveDependents returns every content type that reaches apiID
// through references, nearest first
func (g *Graph) TransitiveDependents(apiID string) []string {
	visited := map[string]bool{apiID: true}
	result := make([]string, 0)

	var visit func(string)
	visit = func(id string) {
		node, exists := g.nodes[id]
		if !exists {
			return
		}
		for _, dependent := range node.DependedBy {
			if visited[dependent] {
				continue
			}
			visited[dependent] = true
			result = append(result, dependent)
			visit(dependent)
		}
	}

	visit(apiID)
	return result
}

// Order is a creation order for content types
type Order struct {
	// Inputs holds every content type exactly once, each after the types it
	// references unless both sit on a cycle.
	Inputs []ir.ContentTypeInput
	// Cycles lists the reference cycles found, each as the apiIds along the
	// cycle with the first repeated at the end. Self references are cycles
	// of one type.
	Cycles [][]string
}

// APIIDs returns the apiIds in creation order
func (o Order) APIIDs() []string {
	ids := make([]string, 0, len(o.Inputs))
	for _, input := range o.Inputs {
		ids = append(ids, input.APIID)
	}
	return ids
}

// Order walks the graph depth first in input order. A reference back to a
// type still being visited closes a cycle; it is recorded and skipped.
func (g *Graph) Order() Order {
	const (
		unvisited = iota
		inProgress
		resolved
	)

	state := make(map[string]int, len(g.nodes))
	stack := make([]string, 0)
	result := Order{
		Inputs: make([]ir.ContentTypeInput, 0, len(g.nodes)),
		Cycles: make([][]string, 0),
	}

	var visit func(string)
	visit = func(apiID string) {
		state[apiID] = inProgress
		stack = append(stack, apiID)

		for _, dep := range g.nodes[apiID].DependsOn {
			switch state[dep] {
			case resolved:
				continue
			case inProgress:
				result.Cycles = append(result.Cycles, cycleFrom(stack, dep))
			default:
				visit(dep)
			}
		}

		stack = stack[:len(stack)-1]
		state[apiID] = resolved
		result.Inputs = append(result.Inputs, g.nodes[apiID].Input)
	}

	for _, apiID := range g.order {
		if state[apiID] == unvisited {
			visit(apiID)
		}
	}

	return result
}

// cycleFrom cuts the cycle that starts at dep out of the visit stack
func cycleFrom(stack []string, dep string) []string {
	start := len(stack) - 1
	for start > 0 && stack[start] != dep {
		start--
	}
	cycle := make([]string, 0, len(stack)-start+1)
	cycle = append(cycle, stack[start:]...)
	return append(cycle, dep)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
