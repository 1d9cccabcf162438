// Package complexity measures cyclomatic complexity and code lines of source files.
package complexity

import (
	"errors"
	"slices"

	"github.com/huangsam/outlier/schema"
)

var (
	// ErrUnsupportedLanguage is returned for files no analyzer can measure.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoCGO is returned when cyclomatic complexity is unavailable due to missing CGO.
	ErrNoCGO = errors.New("complexity analysis requires CGO (tree-sitter)")
)

// Result holds the metrics of one parsed source.
type Result struct {
	CCN       int
	NLOC      int
	Functions int
}

// rules lists the syntax node types that drive the metrics of one language.
type rules struct {
	functions []string // Nodes that open a new function scope
	decisions []string // Nodes that add one path through a function
	booleans  []string // Binary nodes that count when their operator is short-circuit
	always    []string // Boolean nodes that always count
}

// shortCircuit holds the operator tokens that branch.
var shortCircuit = []string{"&&", "||", "and", "or"}

var cFamilyDecisions = []string{
	"if_statement", "for_statement", "while_statement", "do_statement",
	"case_statement", "conditional_expression",
}

var jsRules = rules{
	functions: []string{
		"function_declaration", "function", "function_expression", "arrow_function",
		"method_definition", "generator_function_declaration", "generator_function",
	},
	decisions: []string{
		"if_statement", "for_statement", "for_in_statement", "while_statement",
		"do_statement", "switch_case", "catch_clause", "ternary_expression",
	},
	booleans: []string{"binary_expression"},
}

var languageRules = map[schema.Language]rules{
	schema.LangGo: {
		functions: []string{"function_declaration", "method_declaration", "func_literal"},
		decisions: []string{
			"if_statement", "for_statement", "expression_case", "type_case", "communication_case",
		},
		booleans: []string{"binary_expression"},
	},
	schema.LangPython: {
		functions: []string{"function_definition", "lambda"},
		decisions: []string{
			"if_statement", "elif_clause", "for_statement", "while_statement", "except_clause",
			"conditional_expression", "for_in_clause", "if_clause",
		},
		booleans: []string{"boolean_operator"},
	},
	schema.LangJavaScript: jsRules,
	schema.LangTypeScript: jsRules,
	schema.LangJava: {
		functions: []string{"method_declaration", "constructor_declaration", "lambda_expression"},
		decisions: []string{
			"if_statement", "for_statement", "enhanced_for_statement", "while_statement",
			"do_statement", "switch_block_statement_group", "catch_clause", "ternary_expression",
		},
		booleans: []string{"binary_expression"},
	},
	schema.LangC: {
		functions: []string{"function_definition"},
		decisions: cFamilyDecisions,
		booleans:  []string{"binary_expression"},
	},
	schema.LangCPP: {
		functions: []string{"function_definition", "lambda_expression"},
		decisions: append(slices.Clone(cFamilyDecisions), "for_range_loop", "catch_clause"),
		booleans:  []string{"binary_expression"},
	},
	schema.LangCSharp: {
		functions: []string{
			"method_declaration", "constructor_declaration", "local_function_statement",
			"lambda_expression", "anonymous_method_expression",
		},
		decisions: []string{
			"if_statement", "for_statement", "foreach_statement", "while_statement",
			"do_statement", "switch_section", "catch_clause", "conditional_expression",
		},
		booleans: []string{"binary_expression"},
	},
	schema.LangRust: {
		functions: []string{"function_item", "closure_expression"},
		decisions: []string{
			"if_expression", "while_expression", "loop_expression", "for_expression", "match_arm",
		},
		booleans: []string{"binary_expression"},
	},
	schema.LangRuby: {
		functions: []string{"method", "singleton_method", "lambda"},
		decisions: []string{
			"if", "elsif", "unless", "while", "until", "for", "when", "rescue", "conditional",
			"if_modifier", "unless_modifier", "while_modifier", "until_modifier",
		},
		booleans: []string{"binary"},
	},
	schema.LangPHP: {
		functions: []string{
			"function_definition", "method_declaration", "anonymous_function_creation_expression",
			"anonymous_function", "arrow_function",
		},
		decisions: []string{
			"if_statement", "else_if_clause", "for_statement", "foreach_statement", "while_statement",
			"do_statement", "case_statement", "catch_clause", "conditional_expression",
		},
		booleans: []string{"binary_expression"},
	},
	schema.LangSwift: {
		functions: []string{"function_declaration", "init_declaration", "lambda_literal"},
		decisions: []string{
			"if_statement", "guard_statement", "for_statement", "while_statement",
			"repeat_while_statement", "switch_entry", "catch_block", "ternary_expression",
		},
		always: []string{"conjunction_expression", "disjunction_expression"},
	},
	schema.LangScala: {
		functions: []string{"function_definition", "lambda_expression"},
		decisions: []string{
			"if_expression", "while_expression", "for_expression", "case_clause", "catch_clause",
		},
		booleans: []string{"infix_expression"},
	},
	schema.LangLua: {
		functions: []string{"function_declaration", "function_definition"},
		decisions: []string{
			"if_statement", "elseif_statement", "for_statement", "while_statement", "repeat_statement",
		},
		booleans: []string{"binary_expression"},
	},
}

func (r rules) isFunction(nodeType string) bool {
	return slices.Contains(r.functions, nodeType)
}
