// Package extract walks one file's syntax tree and produces its structural
// facts: imports, exports, declared functions and cyclomatic-style
// complexity. Extraction reads only the file's own text and writes only to
// the file's own fact bundle, so it can run for many files concurrently.
package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/codescope/internal/types"
)

// Extractor performs a single traversal of a parsed file.
type Extractor struct{}

// New creates an extractor. It is stateless and safe to share.
func New() *Extractor {
	return &Extractor{}
}

// Extract populates file with the structural facts found in tree. The file's
// Content must hold the exact bytes the tree was parsed from.
func (e *Extractor) Extract(file *types.SourceFile, tree *sitter.Tree) {
	root := tree.RootNode()
	if root == nil {
		return
	}

	content := []byte(file.Content)
	fileBranches := 0
	e.walk(root, content, file, false, &fileBranches)

	total := fileBranches
	for _, fn := range file.Functions {
		total += fn.Complexity
	}
	file.Complexity = total
}

// walk visits every node once. Function-shaped nodes yield a FunctionFact
// whose complexity covers their own scope; branching encountered outside
// any function accumulates into the file-level counter.
func (e *Extractor) walk(node *sitter.Node, content []byte, file *types.SourceFile, inFunction bool, fileBranches *int) {
	if node == nil {
		return
	}

	childInFunction := inFunction

	switch kind := node.Kind(); kind {
	case "import_statement":
		if imp := extractImport(node, content); imp != nil {
			file.Imports = append(file.Imports, imp)
		}

	case "export_statement":
		file.Exports = append(file.Exports, extractExports(node, content)...)

	case "function_declaration", "generator_function_declaration",
		"function_expression", "generator_function", "arrow_function":
		file.Functions = append(file.Functions, extractFunction(node, content))
		childInFunction = true

	default:
		if isBranchNode(node) && !inFunction {
			*fileBranches++
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), content, file, childInFunction, fileBranches)
	}
}

// extractFunction builds the fact for one function-shaped node. The name
// comes from the declaration itself or from the identifier the expression is
// bound to; an unbound expression gets the anonymous placeholder.
func extractFunction(node *sitter.Node, content []byte) *types.FunctionFact {
	name := functionName(node, content)
	pos := node.StartPosition()

	fact := &types.FunctionFact{
		Name:       name,
		Line:       int(pos.Row) + 1,
		Column:     int(pos.Column),
		Params:     extractParams(node, content),
		Complexity: scopeComplexity(node),
		CalledBy:   []string{},
		Calls:      []string{},
		StartByte:  int(node.StartByte()),
		EndByte:    int(node.EndByte()),
	}
	return fact
}

// functionName resolves the observable binding for a function node.
func functionName(node *sitter.Node, content []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, content)
	}

	// Arrow/function expressions take the identifier they are assigned to:
	// const f = () => {} or f = function() {}.
	parent := node.Parent()
	if parent != nil {
		switch parent.Kind() {
		case "variable_declarator":
			if nameNode := parent.ChildByFieldName("name"); nameNode != nil && nameNode.Kind() == "identifier" {
				return nodeText(nameNode, content)
			}
		case "assignment_expression":
			if left := parent.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
				return nodeText(left, content)
			}
		case "pair":
			// Object literal shorthand: { handler: () => {} }
			if key := parent.ChildByFieldName("key"); key != nil {
				return nodeText(key, content)
			}
		}
	}

	return types.AnonymousFunction
}

// extractParams collects parameter names. Destructuring and rest patterns
// contribute the first identifier found inside them; anything without an
// identifier is skipped.
func extractParams(node *sitter.Node, content []byte) []string {
	params := []string{}

	paramsNode := node.ChildByFieldName("parameters")
	if paramsNode == nil {
		// Arrow functions with a single bare parameter: x => x * 2
		if p := node.ChildByFieldName("parameter"); p != nil && p.Kind() == "identifier" {
			return append(params, nodeText(p, content))
		}
		return params
	}

	for i := uint(0); i < paramsNode.ChildCount(); i++ {
		child := paramsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			params = append(params, nodeText(child, content))
		case "required_parameter", "optional_parameter", "assignment_pattern",
			"rest_pattern", "object_pattern", "array_pattern":
			if id := firstIdentifier(child, content); id != "" {
				params = append(params, id)
			}
		}
	}
	return params
}

// firstIdentifier returns the text of the first identifier inside node.
func firstIdentifier(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "identifier" {
		return nodeText(node, content)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if id := firstIdentifier(node.Child(i), content); id != "" {
			return id
		}
	}
	return ""
}

// extractImport builds one ImportFact from an import_statement node.
// Binding names are gathered per specifier form; unrecognized forms are
// skipped rather than failing the file.
func extractImport(node *sitter.Node, content []byte) *types.ImportFact {
	imp := &types.ImportFact{
		Names: []string{},
		Line:  int(node.StartPosition().Row) + 1,
	}

	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		sourceNode = findChildByKind(node, "string")
	}
	if sourceNode == nil {
		return nil
	}
	imp.Specifier = stripQuotes(nodeText(sourceNode, content))
	if imp.Specifier == "" {
		return nil
	}

	clause := findChildByKind(node, "import_clause")
	if clause == nil {
		// Side-effect import: import './styles.css'
		return imp
	}

	for i := uint(0); i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			// Default binding: import React from 'react'
			imp.Names = append(imp.Names, nodeText(child, content))

		case "named_imports":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				// The local binding is the alias when renamed, else the name.
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					imp.Names = append(imp.Names, nodeText(alias, content))
				} else if name := spec.ChildByFieldName("name"); name != nil {
					imp.Names = append(imp.Names, nodeText(name, content))
				}
			}

		case "namespace_import":
			// import * as utils from './utils' binds a single name.
			if id := findChildByKind(child, "identifier"); id != nil {
				imp.Names = append(imp.Names, nodeText(id, content))
			}
		}
	}

	return imp
}

// extractExports builds the ExportFacts for one export_statement node.
func extractExports(node *sitter.Node, content []byte) []types.ExportFact {
	line := int(node.StartPosition().Row) + 1
	isDefault := false
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == "default" {
			isDefault = true
			break
		}
	}

	if isDefault {
		name := types.DefaultExportName
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			if nameNode := decl.ChildByFieldName("name"); nameNode != nil {
				name = nodeText(nameNode, content)
			}
		}
		return []types.ExportFact{{Name: name, Kind: types.ExportDefault, Line: line}}
	}

	var exports []types.ExportFact

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		switch decl.Kind() {
		case "function_declaration", "generator_function_declaration", "class_declaration":
			if nameNode := decl.ChildByFieldName("name"); nameNode != nil {
				exports = append(exports, types.ExportFact{
					Name: nodeText(nameNode, content),
					Kind: types.ExportNamed,
					Line: line,
				})
			}
		case "lexical_declaration", "variable_declaration":
			for i := uint(0); i < decl.ChildCount(); i++ {
				d := decl.Child(i)
				if d == nil || d.Kind() != "variable_declarator" {
					continue
				}
				if nameNode := d.ChildByFieldName("name"); nameNode != nil && nameNode.Kind() == "identifier" {
					exports = append(exports, types.ExportFact{
						Name: nodeText(nameNode, content),
						Kind: types.ExportNamed,
						Line: line,
					})
				}
			}
		}
		return exports
	}

	// Re-export list: export { a, b as c }
	if clause := findChildByKind(node, "export_clause"); clause != nil {
		for i := uint(0); i < clause.ChildCount(); i++ {
			spec := clause.Child(i)
			if spec == nil || spec.Kind() != "export_specifier" {
				continue
			}
			// The exported name is the alias when present: export { a as b }
			// exports b.
			var nameNode *sitter.Node
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				nameNode = alias
			} else {
				nameNode = spec.ChildByFieldName("name")
			}
			if nameNode != nil {
				exports = append(exports, types.ExportFact{
					Name: nodeText(nameNode, content),
					Kind: types.ExportNamed,
					Line: line,
				})
			}
		}
	}

	return exports
}

// nodeText extracts text content from an AST node
func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > uint(len(content)) || end > uint(len(content)) || start > end {
		return ""
	}
	return string(content[start:end])
}

// findChildByKind finds the first direct or nested child of the given kind
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == kind {
			return child
		}
		if found := findChildByKind(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"' || s[0] == '`') {
		return s[1 : len(s)-1]
	}
	return s
}
