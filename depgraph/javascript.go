package depgraph

import (
	"context"
	"fmt"
	sitter "github.com/smacker/go-tree-sitter"
	javascriptsitter "github.com/smacker/go-tree-sitter/javascript"
	"strings"
)

// extractJavascript parses a JavaScript unit with tree-sitter and extracts
// module references (import, require) and top-level symbols
func extractJavascript(ctx context.Context, unitID, source string) ([]Reference, []Symbol, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascriptsitter.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, []byte(source))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse javascript source: %w", err)
	}
	root := tree.RootNode()
	src := []byte(source)

	var references []Reference
	var symbols []Symbol
	var visit func(node *sitter.Node, topLevel bool)
	visit = func(node *sitter.Node, topLevel bool) {
		switch node.Type() {
		case "import_statement":
			if sourceNode := node.ChildByFieldName("source"); sourceNode != nil {
				references = append(references, Reference{
					UnitID: unitID,
					Target: unquote(sourceNode.Content(src)),
					Kind:   "import",
				})
			}
			return
		case "call_expression":
			function := node.ChildByFieldName("function")
			arguments := node.ChildByFieldName("arguments")
			if function != nil && arguments != nil && function.Content(src) == "require" {
				if arguments.NamedChildCount() == 1 && arguments.NamedChild(0).Type() == "string" {
					references = append(references, Reference{
						UnitID: unitID,
						Target: unquote(arguments.NamedChild(0).Content(src)),
						Kind:   "require",
					})
					return
				}
			}
		case "function_declaration", "generator_function_declaration":
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
		case "class_declaration":
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
		case "export_statement":
			if declaration := node.ChildByFieldName("declaration"); declaration != nil {
				visit(declaration, topLevel)
			}
			return
		}
		next := topLevel && node.Type() == "program"
		for i := 0; i < int(node.NamedChildCount()); i++ {
			visit(node.NamedChild(i), next)
		}
	}
	visit(root, true)
	return references, symbols, nil
}

func unquote(literal string) string {
	return strings.Trim(literal, "'\"`")
}
