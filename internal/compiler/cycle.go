package compiler

import (
	"slices"
	"strings"
)

// Cycle is a chain of complex field references that leads back to its
// start. A schema cannot contain itself, so every cycle is an error.
type Cycle struct {
	Path []string `json:"path"` // ["A", "B", "A"]
}

func (c Cycle) String() string {
	return strings.Join(c.Path, " → ")
}

// dependencyGraph maps a predicate label to the labels its fields refer to.
type dependencyGraph struct {
	nodes []string // declaration order
	edges map[string][]string
}

// buildDependencyGraph records one edge per complex field whose type names
// a declared predicate. Unknown types are reported by Validate, not here.
func buildDependencyGraph(decls []*Decl) dependencyGraph {
	g := dependencyGraph{edges: make(map[string][]string, len(decls))}
	declared := make(map[string]bool, len(decls))
	for _, d := range decls {
		declared[d.Label] = true
	}
	for _, d := range decls {
		g.nodes = append(g.nodes, d.Label)
		g.edges[d.Label] = []string{}
		for _, f := range d.Fields {
			if !f.IsBuiltin() && declared[f.Type] && !slices.Contains(g.edges[d.Label], f.Type) {
				g.edges[d.Label] = append(g.edges[d.Label], f.Type)
			}
		}
	}
	return g
}

// analyze returns the labels in build order (every label after the labels
// it refers to) together with any reference cycles.
//
// Tarjan's algorithm emits each strongly connected component after all
// components reachable from it, which is exactly dependency order.
func analyze(decls []*Decl) (order []string, cycles []Cycle) {
	g := buildDependencyGraph(decls)
	for _, scc := range tarjanSCC(g) {
		if len(scc) > 1 || hasSelfLoop(scc[0], g) {
			cycles = append(cycles, Cycle{Path: reconstructCyclePath(scc, g)})
			continue
		}
		order = append(order, scc[0])
	}
	return order, cycles
}

func hasSelfLoop(node string, g dependencyGraph) bool {
	return slices.Contains(g.edges[node], node)
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm,
// visiting roots in declaration order so results are deterministic.
func tarjanSCC(g dependencyGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range g.nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// reconstructCyclePath walks edges inside an SCC from its earliest
// declared member until it returns to it.
func reconstructCyclePath(scc []string, g dependencyGraph) []string {
	members := make(map[string]bool, len(scc))
	for _, node := range scc {
		members[node] = true
	}

	start := scc[0]
	for _, node := range g.nodes {
		if members[node] {
			start = node
			break
		}
	}

	path := []string{start}
	visited := map[string]bool{start: true}
	current := start
	for {
		var next string
		for _, w := range g.edges[current] {
			if w == start || (members[w] && !visited[w]) {
				next = w
				break
			}
		}
		if next == "" {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		visited[next] = true
		current = next
	}
	return path
}
