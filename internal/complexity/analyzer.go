//go:build cgo

package complexity

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/lua"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/huangsam/outlier/schema"
)

// Analyzer computes complexity metrics by parsing sources with tree-sitter.
type Analyzer struct{}

// NewAnalyzer creates a new complexity analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// IsAvailable returns whether syntax-aware analysis is compiled in.
func IsAvailable() bool {
	return true
}

func grammar(lang schema.Language) *sitter.Language {
	switch lang {
	case schema.LangGo:
		return golang.GetLanguage()
	case schema.LangPython:
		return python.GetLanguage()
	case schema.LangJavaScript:
		return javascript.GetLanguage()
	case schema.LangTypeScript:
		return typescript.GetLanguage()
	case schema.LangJava:
		return java.GetLanguage()
	case schema.LangC:
		return c.GetLanguage()
	case schema.LangCPP:
		return cpp.GetLanguage()
	case schema.LangCSharp:
		return csharp.GetLanguage()
	case schema.LangRust:
		return rust.GetLanguage()
	case schema.LangRuby:
		return ruby.GetLanguage()
	case schema.LangPHP:
		return php.GetLanguage()
	case schema.LangSwift:
		return swift.GetLanguage()
	case schema.LangScala:
		return scala.GetLanguage()
	case schema.LangLua:
		return lua.GetLanguage()
	default:
		return nil
	}
}

// Supports reports whether lang has a grammar.
func (a *Analyzer) Supports(lang schema.Language) bool {
	_, ok := languageRules[lang]
	return ok && grammar(lang) != nil
}

// AnalyzeSource parses source and measures it.
// Each call uses its own parser, so an Analyzer is safe for concurrent use.
func (a *Analyzer) AnalyzeSource(ctx context.Context, source []byte, lang schema.Language) (Result, error) {
	r, ok := languageRules[lang]
	tsLang := grammar(lang)
	if !ok || tsLang == nil {
		return Result{}, fmt.Errorf("%w: no grammar for %s", ErrUnsupportedLanguage, lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsLang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return Result{}, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	w := &walker{rules: r, source: source, comment: make([]bool, len(source))}
	w.visit(tree.RootNode(), nil)
	return Result{CCN: w.ccn, NLOC: w.nloc(), Functions: w.functions}, nil
}

// walker accumulates metrics over one syntax tree.
type walker struct {
	rules     rules
	source    []byte
	comment   []bool // Bytes covered by comment nodes
	ccn       int
	functions int
}

// visit walks node. fn points at the CCN of the innermost enclosing
// function and is nil at file scope. Nested functions keep their own count.
func (w *walker) visit(node *sitter.Node, fn *int) {
	if node == nil {
		return
	}
	nodeType := node.Type()
	if strings.Contains(nodeType, "comment") {
		for i := node.StartByte(); i < node.EndByte() && int(i) < len(w.comment); i++ {
			w.comment[i] = true
		}
		return
	}

	// Keyword tokens share type names with the constructs they open
	named := node.IsNamed()
	if named && w.rules.isFunction(nodeType) {
		ccn := 1
		w.functions++
		w.visitChildren(node, &ccn)
		w.ccn += ccn
		return
	}

	if fn != nil && named && w.isDecision(node) {
		*fn++
	}
	w.visitChildren(node, fn)
}

func (w *walker) visitChildren(node *sitter.Node, fn *int) {
	for i := 0; i < int(node.ChildCount()); i++ {
		w.visit(node.Child(i), fn)
	}
}

func (w *walker) isDecision(node *sitter.Node) bool {
	nodeType := node.Type()
	switch {
	case slices.Contains(w.rules.decisions, nodeType), slices.Contains(w.rules.always, nodeType):
		return true
	case slices.Contains(w.rules.booleans, nodeType):
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child != nil && !child.IsNamed() && slices.Contains(shortCircuit, child.Type()) {
				return true
			}
		}
	}
	return false
}

// nloc counts lines with at least one non-blank byte outside comments.
func (w *walker) nloc() int {
	nloc := 0
	hasCode := false
	for i, b := range w.source {
		if b == '\n' {
			if hasCode {
				nloc++
			}
			hasCode = false
			continue
		}
		if !w.comment[i] && !isSpace(b) {
			hasCode = true
		}
	}
	if hasCode {
		nloc++
	}
	return nloc
}
