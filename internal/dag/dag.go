// Package dag provides the element inheritance graph.
// Edges run from a base element to the elements deriving from it, so a
// topological order generates bases before derived elements and the
// affected set of a changed element is everything inheriting from it.
package dag

import (
	"fmt"
	"maps"
	"slices"
)

// Node represents a node in the graph.
type Node[T any] struct {
	// ID is the unique identifier (element name)
	ID string
	// Data holds the node payload
	Data T
}

// Graph is a directed graph keyed by string IDs. It tolerates cycles on
// construction; HasCycle reports them and ordering queries refuse them.
type Graph[T any] struct {
	nodes   map[string]*Node[T]
	derived map[string][]string // base -> derived
	bases   map[string][]string // derived -> bases
}

// NewGraph creates a new empty graph.
func NewGraph[T any]() *Graph[T] {
	return &Graph[T]{
		nodes:   make(map[string]*Node[T]),
		derived: make(map[string][]string),
		bases:   make(map[string][]string),
	}
}

// AddNode adds a node, replacing the payload of an existing one.
func (g *Graph[T]) AddNode(id string, data T) {
	if n, exists := g.nodes[id]; exists {
		n.Data = data
		return
	}
	g.nodes[id] = &Node[T]{ID: id, Data: data}
}

// AddEdge records that derived inherits from base.
func (g *Graph[T]) AddEdge(base, derived string) error {
	if _, exists := g.nodes[base]; !exists {
		return fmt.Errorf("base node %q does not exist", base)
	}
	if _, exists := g.nodes[derived]; !exists {
		return fmt.Errorf("derived node %q does not exist", derived)
	}
	if base == derived {
		return fmt.Errorf("self-loop detected: %s", base)
	}

	if !slices.Contains(g.derived[base], derived) {
		g.derived[base] = append(g.derived[base], derived)
	}
	if !slices.Contains(g.bases[derived], base) {
		g.bases[derived] = append(g.bases[derived], base)
	}
	return nil
}

// GetNode returns a node by ID.
func (g *Graph[T]) GetNode(id string) (*Node[T], bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// GetChildren returns the elements directly deriving from a node.
func (g *Graph[T]) GetChildren(id string) []string {
	return g.derived[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph[T]) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph[T]) EdgeCount() int {
	count := 0
	for _, children := range g.derived {
		count += len(children)
	}
	return count
}

// HasCycle returns true if the graph contains a cycle, along with the cycle
// path (first and last entries are the same node).
func (g *Graph[T]) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	from := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true

		for _, next := range g.derived[id] {
			if !visited[next] {
				from[next] = id
				if dfs(next) {
					return true
				}
			} else if onStack[next] {
				cyclePath = []string{next}
				for curr := id; curr != next; curr = from[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{next}, cyclePath...)
				return true
			}
		}

		onStack[id] = false
		return false
	}

	for _, id := range g.sortedIDs() {
		if !visited[id] && dfs(id) {
			return true, cyclePath
		}
	}
	return false, nil
}

// GetExecutionLevels returns node IDs grouped by inheritance depth.
// Level 0 holds elements with no resolvable base; nodes in level N only
// depend on nodes in earlier levels and can be processed in parallel.
func (g *Graph[T]) GetExecutionLevels() ([][]string, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	assigned := make(map[string]int)

	var levelOf func(id string) int
	levelOf = func(id string) int {
		if level, ok := assigned[id]; ok {
			return level
		}
		level := 0
		for _, base := range g.bases[id] {
			level = max(level, levelOf(base)+1)
		}
		assigned[id] = level
		return level
	}

	maxLevel := -1
	for id := range g.nodes {
		maxLevel = max(maxLevel, levelOf(id))
	}

	levels := make([][]string, maxLevel+1)
	for i := range levels {
		levels[i] = []string{}
	}
	for id, level := range assigned {
		levels[level] = append(levels[level], id)
	}
	for i := range levels {
		slices.Sort(levels[i])
	}
	return levels, nil
}

// GetAffectedNodes returns the changed nodes plus everything deriving from
// them, directly or transitively.
func (g *Graph[T]) GetAffectedNodes(changedIDs []string) []string {
	affected := make(map[string]bool)

	var mark func(id string)
	mark = func(id string) {
		if affected[id] {
			return
		}
		affected[id] = true
		for _, next := range g.derived[id] {
			mark(next)
		}
	}

	for _, id := range changedIDs {
		if _, exists := g.nodes[id]; exists {
			mark(id)
		}
	}
	return slices.Sorted(maps.Keys(affected))
}

// GetUpstreamNodes returns every base of the node, transitively.
func (g *Graph[T]) GetUpstreamNodes(id string) []string {
	upstream := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, base := range g.bases[nodeID] {
			if !upstream[base] {
				upstream[base] = true
				mark(base)
			}
		}
	}

	mark(id)
	return slices.Sorted(maps.Keys(upstream))
}

// GetRoots returns nodes with no bases.
func (g *Graph[T]) GetRoots() []string {
	var roots []string
	for _, id := range g.sortedIDs() {
		if len(g.bases[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Subgraph returns a new graph containing only the specified nodes and the
// edges between them.
func (g *Graph[T]) Subgraph(nodeIDs []string) *Graph[T] {
	sub := NewGraph[T]()
	for _, id := range nodeIDs {
		if node, exists := g.nodes[id]; exists {
			sub.AddNode(id, node.Data)
		}
	}
	for _, id := range nodeIDs {
		for _, next := range g.derived[id] {
			if _, ok := sub.nodes[next]; ok {
				_ = sub.AddEdge(id, next)
			}
		}
	}
	return sub
}

func (g *Graph[T]) sortedIDs() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}
