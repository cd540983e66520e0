package depgraph

import (
	"go/ast"
	"go/parser"
	"go/token"
	"golang.org/x/tools/go/ast/astutil"
	"strings"
)

// extractGo parses a Go unit and extracts its import references and
// top-level symbols
func extractGo(unitID, source string) ([]Reference, []Symbol, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, unitID, source, parser.SkipObjectResolution)
	if err != nil {
		return nil, nil, err
	}
	var references []Reference
	for _, group := range astutil.Imports(fset, file) {
		for _, spec := range group {
			importPath := strings.Trim(spec.Path.Value, `"`)
			references = append(references, Reference{UnitID: unitID, Target: importPath, Kind: "import"})
		}
	}
	var symbols []Symbol
	for _, decl := range file.Decls {
		switch actual := decl.(type) {
		case *ast.FuncDecl:
			if actual.Recv != nil {
				continue
			}
			symbols = append(symbols, Symbol{
				UnitID: unitID,
				Name:   actual.Name.Name,
				Kind:   "func",
				Line:   fset.Position(actual.Pos()).Line,
			})
		case *ast.GenDecl:
			if actual.Tok != token.TYPE {
				continue
			}
			for _, spec := range actual.Specs {
				if typeSpec, ok := spec.(*ast.TypeSpec); ok {
					symbols = append(symbols, Symbol{
						UnitID: unitID,
						Name:   typeSpec.Name.Name,
						Kind:   "type",
						Line:   fset.Position(typeSpec.Pos()).Line,
					})
				}
			}
		}
	}
	return references, symbols, nil
}
