package includegraph

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Include is an include directive found by the C++ parser.
type Include struct {
	Path   string
	System bool
	// Line is 1-based.
	Line int
}

// ParseIncludes extracts the include directives of a C or C++ source,
// including those nested in preprocessor conditionals.
func ParseIncludes(sourceCode []byte) ([]Include, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse C++ code: %w", err)
	}
	defer tree.Close()

	return extractIncludes(tree.RootNode(), sourceCode), nil
}

func extractIncludes(rootNode *sitter.Node, sourceCode []byte) []Include {
	var includes []Include

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		if n.Type() == "preproc_include" {
			if inc, ok := includeFromNode(n, sourceCode); ok {
				includes = append(includes, inc)
			}
			return
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(rootNode)
	return includes
}

func includeFromNode(node *sitter.Node, sourceCode []byte) (Include, bool) {
	line := int(node.StartPoint().Row) + 1
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "string_literal":
			path := strings.Trim(child.Content(sourceCode), "\" ")
			return Include{Path: path, Line: line}, path != ""
		case "system_lib_string":
			path := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(child.Content(sourceCode)), "<"), ">"))
			return Include{Path: path, System: true, Line: line}, path != ""
		}
	}
	return Include{}, false
}
