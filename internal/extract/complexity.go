package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// scopeComplexity calculates cyclomatic-style complexity for one function
// scope: 1 for the scope itself plus 1 per decision point. Nested
// function-shaped subtrees are excluded; they carry their own facts, so the
// per-function scores partition the file total without double counting.
func scopeComplexity(fn *sitter.Node) int {
	if fn == nil {
		return 1
	}
	complexity := 1
	for i := uint(0); i < fn.ChildCount(); i++ {
		countBranches(fn.Child(i), &complexity)
	}
	return complexity
}

// countBranches recursively counts decision points, stopping at nested
// function boundaries.
func countBranches(node *sitter.Node, complexity *int) {
	if node == nil || isFunctionNode(node) {
		return
	}

	if isBranchNode(node) {
		*complexity++
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		countBranches(node.Child(i), complexity)
	}
}

// isFunctionNode reports whether the node opens a new function scope.
func isFunctionNode(node *sitter.Node) bool {
	switch node.Kind() {
	case "function_declaration", "generator_function_declaration",
		"function_expression", "generator_function", "arrow_function":
		return true
	}
	return false
}

// isBranchNode reports whether the node is a decision point: conditionals,
// loops, switch cases, catch clauses, ternaries and short-circuit boolean
// operators.
func isBranchNode(node *sitter.Node) bool {
	switch node.Kind() {
	case "if_statement":
		return true
	case "for_statement", "for_in_statement":
		return true
	case "while_statement", "do_statement":
		return true
	case "switch_case":
		return true
	case "catch_clause":
		return true
	case "ternary_expression":
		return true
	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			kind := op.Kind()
			return kind == "&&" || kind == "||"
		}
	}
	return false
}
