package depgraph

import (
	"context"
	"fmt"
	sitter "github.com/smacker/go-tree-sitter"
	pythonsitter "github.com/smacker/go-tree-sitter/python"
)

// extractPython parses a Python unit with tree-sitter and extracts module
// references (import, from-import) and top-level symbols
func extractPython(ctx context.Context, unitID, source string) ([]Reference, []Symbol, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(pythonsitter.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, []byte(source))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse python source: %w", err)
	}
	root := tree.RootNode()
	src := []byte(source)

	var references []Reference
	var symbols []Symbol
	var visit func(node *sitter.Node, topLevel bool)
	visit = func(node *sitter.Node, topLevel bool) {
		switch node.Type() {
		case "import_statement":
			for i := 0; i < int(node.NamedChildCount()); i++ {
				child := node.NamedChild(i)
				switch child.Type() {
				case "dotted_name":
					references = append(references, Reference{UnitID: unitID, Target: child.Content(src), Kind: "import"})
				case "aliased_import":
					if name := child.ChildByFieldName("name"); name != nil {
						references = append(references, Reference{UnitID: unitID, Target: name.Content(src), Kind: "import"})
					}
				}
			}
			return
		case "import_from_statement":
			if module := node.ChildByFieldName("module_name"); module != nil {
				references = append(references, Reference{UnitID: unitID, Target: module.Content(src), Kind: "import"})
			}
			return
		case "function_definition":
			if topLevel {
				if name := node.ChildByFieldName("name"); name != nil {
					symbols = append(symbols, Symbol{
						UnitID: unitID,
						Name:   name.Content(src),
						Kind:   "function",
						Line:   int(node.StartPoint().Row) + 1,
					})
				}
			}
			return
		case "class_definition":
			if topLevel {
				if name := node.ChildByFieldName("name"); name != nil {
					symbols = append(symbols, Symbol{
						UnitID: unitID,
						Name:   name.Content(src),
						Kind:   "class",
						Line:   int(node.StartPoint().Row) + 1,
					})
				}
			}
			return
		case "decorated_definition":
			if definition := node.ChildByFieldName("definition"); definition != nil {
				visit(definition, topLevel)
			}
			return
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			visit(node.NamedChild(i), topLevel && node.Type() == "module")
		}
	}
	visit(root, true)
	return references, symbols, nil
}
