package depgraph

import (
	"path"
	"sort"
)

// Edge is a resolved directed reference between two units in the collection
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Kind string `yaml:"kind"`
}

// Reference is a raw reference extracted from a unit before resolution
type Reference struct {
	UnitID string `yaml:"unitId"`
	Target string `yaml:"target"`
	Kind   string `yaml:"kind"`
}

// Symbol is a top-level definition extracted from a unit
type Symbol struct {
	UnitID string `yaml:"unitId"`
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Line   int    `yaml:"line"`
}

// Fault records a unit whose references could not be extracted; the unit
// stays in the graph as a reference-free leaf
type Fault struct {
	UnitID  string `yaml:"unitId"`
	Message string `yaml:"message"`
}

// Graph is the directed dependency graph over a code unit collection. Edge
// endpoints always reference unit ids present in the collection; references
// that resolve to nothing are kept in Unresolved and produce no edge.
type Graph struct {
	Units      []string
	Edges      []Edge
	Unresolved []Reference
	Symbols    []Symbol
	Faults     []Fault

	out map[string][]string
	in  map[string][]string
}

func newGraph(units []string) *Graph {
	sorted := append([]string(nil), units...)
	sort.Strings(sorted)
	return &Graph{
		Units: sorted,
		out:   map[string][]string{},
		in:    map[string][]string{},
	}
}

func (g *Graph) addEdge(from, to, kind string) {
	if from == to {
		return
	}
	for _, existing := range g.out[from] {
		if existing == to {
			return
		}
	}
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind})
	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
}

// Cycles returns the strongly connected components of size two or more,
// each component sorted by unit id, components ordered by their first member
func (g *Graph) Cycles() [][]string {
	state := &tarjan{
		graph:   g,
		index:   map[string]int{},
		lowLink: map[string]int{},
		onStack: map[string]bool{},
	}
	for _, id := range g.Units {
		if _, visited := state.index[id]; !visited {
			state.connect(id)
		}
	}
	var cycles [][]string
	for _, component := range state.components {
		if len(component) < 2 {
			continue
		}
		sort.Strings(component)
		cycles = append(cycles, component)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

// ImpactedBy returns all units that transitively depend on the given unit
// (the closure over incoming edges), sorted by unit id
func (g *Graph) ImpactedBy(unitID string) []string {
	visited := map[string]bool{unitID: true}
	queue := append([]string(nil), g.in[unitID]...)
	var impacted []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		impacted = append(impacted, current)
		queue = append(queue, g.in[current]...)
	}
	sort.Strings(impacted)
	return impacted
}

// Dependencies returns the unit's direct outgoing references
func (g *Graph) Dependencies(unitID string) []string {
	deps := append([]string(nil), g.out[unitID]...)
	sort.Strings(deps)
	return deps
}

// DuplicateSymbols returns symbols defined under the same name and kind in
// more than one unit of the same language scope. Go symbols only collide
// within one directory (one package); other languages collide collection-wide.
func (g *Graph) DuplicateSymbols() map[string][]Symbol {
	grouped := map[string][]Symbol{}
	for _, symbol := range g.Symbols {
		key := symbol.Kind + ":" + symbol.Name
		if symbol.Kind == "func" || symbol.Kind == "type" {
			key = path.Dir(symbol.UnitID) + ":" + key
		}
		grouped[key] = append(grouped[key], symbol)
	}
	duplicates := map[string][]Symbol{}
	for key, symbols := range grouped {
		units := map[string]bool{}
		for _, symbol := range symbols {
			units[symbol.UnitID] = true
		}
		if len(units) > 1 {
			duplicates[key] = symbols
		}
	}
	return duplicates
}

// tarjan implements Tarjan's strongly connected component algorithm
type tarjan struct {
	graph      *Graph
	counter    int
	index      map[string]int
	lowLink    map[string]int
	onStack    map[string]bool
	stack      []string
	components [][]string
}

func (t *tarjan) connect(id string) {
	t.index[id] = t.counter
	t.lowLink[id] = t.counter
	t.counter++
	t.stack = append(t.stack, id)
	t.onStack[id] = true

	neighbors := append([]string(nil), t.graph.out[id]...)
	sort.Strings(neighbors)
	for _, next := range neighbors {
		if _, visited := t.index[next]; !visited {
			t.connect(next)
			if t.lowLink[next] < t.lowLink[id] {
				t.lowLink[id] = t.lowLink[next]
			}
		} else if t.onStack[next] && t.index[next] < t.lowLink[id] {
			t.lowLink[id] = t.index[next]
		}
	}

	if t.lowLink[id] == t.index[id] {
		var component []string
		for {
			top := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[top] = false
			component = append(component, top)
			if top == id {
				break
			}
		}
		t.components = append(t.components, component)
	}
}
