package depgraph

import (
	"context"
	"golang.org/x/mod/modfile"
	"path"
	"strings"

	"github.com/viant/autofix/unit"
)

// Build constructs the dependency graph for a code unit collection from the
// units' current text. Units that fail to parse become reference-free leaves
// with a recorded fault; references that resolve to no unit in the
// collection are recorded as unresolved and produce no edge.
func Build(ctx context.Context, units []*unit.CodeUnit) *Graph {
	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID)
	}
	graph := newGraph(ids)
	index := newUnitIndex(units)

	for _, u := range units {
		references, symbols, err := extract(ctx, u)
		if err != nil {
			graph.Faults = append(graph.Faults, Fault{UnitID: u.ID, Message: err.Error()})
			continue
		}
		graph.Symbols = append(graph.Symbols, symbols...)
		for _, reference := range references {
			targets := index.resolve(u, reference)
			if len(targets) == 0 {
				graph.Unresolved = append(graph.Unresolved, reference)
				continue
			}
			for _, target := range targets {
				graph.addEdge(u.ID, target, reference.Kind)
			}
		}
	}
	return graph
}

func extract(ctx context.Context, u *unit.CodeUnit) ([]Reference, []Symbol, error) {
	switch u.Language {
	case "go":
		return extractGo(u.ID, u.Current)
	case "python":
		return extractPython(ctx, u.ID, u.Current)
	case "javascript":
		return extractJavascript(ctx, u.ID, u.Current)
	default:
		// units in unrecognised languages are reference-free leaves
		return nil, nil, nil
	}
}

// unitIndex resolves extracted references against the collection
type unitIndex struct {
	byID     map[string]bool
	byDir    map[string][]string // directory -> go unit ids
	goModule string
}

func newUnitIndex(units []*unit.CodeUnit) *unitIndex {
	index := &unitIndex{byID: map[string]bool{}, byDir: map[string][]string{}}
	for _, u := range units {
		id := path.Clean(u.ID)
		index.byID[id] = true
		if u.Language == "go" {
			dir := path.Dir(id)
			index.byDir[dir] = append(index.byDir[dir], id)
		}
		if path.Base(id) == "go.mod" {
			if mod, _ := modfile.Parse(u.ID, []byte(u.Current), nil); mod != nil && mod.Module != nil {
				index.goModule = mod.Module.Mod.Path
			}
		}
	}
	return index
}

func (x *unitIndex) resolve(from *unit.CodeUnit, reference Reference) []string {
	switch from.Language {
	case "go":
		return x.resolveGo(reference.Target)
	case "python":
		return x.resolvePython(path.Dir(path.Clean(from.ID)), reference.Target)
	case "javascript":
		return x.resolveJavascript(path.Dir(path.Clean(from.ID)), reference.Target)
	}
	return nil
}

// resolveGo maps an intra-module import path to the go units of the
// imported package directory
func (x *unitIndex) resolveGo(importPath string) []string {
	if x.goModule == "" {
		return nil
	}
	var dir string
	switch {
	case importPath == x.goModule:
		dir = "."
	case strings.HasPrefix(importPath, x.goModule+"/"):
		dir = strings.TrimPrefix(importPath, x.goModule+"/")
	default:
		return nil
	}
	return x.byDir[dir]
}

// resolvePython maps a dotted module reference to a unit, trying the
// importing unit's directory first, then the collection root. Leading dots
// denote relative imports.
func (x *unitIndex) resolvePython(fromDir, target string) []string {
	dots := 0
	for dots < len(target) && target[dots] == '.' {
		dots++
	}
	remainder := strings.ReplaceAll(target[dots:], ".", "/")

	var bases []string
	if dots > 0 {
		base := fromDir
		for i := 1; i < dots; i++ {
			base = path.Dir(base)
		}
		bases = []string{base}
	} else {
		bases = []string{fromDir, "."}
	}
	for _, base := range bases {
		joined := remainder
		if base != "." && base != "" {
			joined = path.Join(base, remainder)
		}
		if joined == "" {
			continue
		}
		for _, candidate := range []string{joined + ".py", path.Join(joined, "__init__.py")} {
			if x.byID[path.Clean(candidate)] {
				return []string{path.Clean(candidate)}
			}
		}
	}
	return nil
}

// resolveJavascript maps a module specifier to a unit; only relative
// specifiers can resolve inside the collection
func (x *unitIndex) resolveJavascript(fromDir, target string) []string {
	if !strings.HasPrefix(target, ".") {
		return nil
	}
	joined := path.Join(fromDir, target)
	candidates := []string{joined}
	if path.Ext(joined) == "" {
		candidates = []string{joined + ".js", joined + ".jsx", path.Join(joined, "index.js")}
	}
	for _, candidate := range candidates {
		if x.byID[path.Clean(candidate)] {
			return []string{path.Clean(candidate)}
		}
	}
	return nil
}
