//go:build cgo

package complexity

import (
	"context"
	"os"
	"testing"

	"github.com/huangsam/outlier/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSource_Testdata(t *testing.T) {
	tests := []struct {
		file      string
		lang      schema.Language
		ccn       int
		nloc      int
		functions int
	}{
		{"testdata/branchy.go", schema.LangGo, 10, 27, 4},
		{"testdata/branchy.py", schema.LangPython, 14, 21, 4},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			source, err := os.ReadFile(tt.file)
			require.NoError(t, err)

			res, err := NewAnalyzer().AnalyzeSource(context.Background(), source, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.ccn, res.CCN, "ccn")
			assert.Equal(t, tt.nloc, res.NLOC, "nloc")
			assert.Equal(t, tt.functions, res.Functions, "functions")
		})
	}
}

func TestAnalyzeSource_Snippets(t *testing.T) {
	tests := []struct {
		name      string
		lang      schema.Language
		source    string
		ccn       int
		functions int
	}{
		{"go no functions", schema.LangGo, "package a\n\nvar x = 1\n", 0, 0},
		{"go top level decisions ignored", schema.LangGo, "package a\n\nvar ok = true && false\n", 0, 0},
		{"go short circuit chain", schema.LangGo, "package a\n\nfunc f(a, b, c bool) bool { return a && b || c }\n", 3, 1},
		{"js trivial function", schema.LangJavaScript, "function f() { return 1 }\n", 1, 1},
		{"ts trivial function", schema.LangTypeScript, "function f() { return 1 }\n", 1, 1},
		{"js ternary and loop", schema.LangJavaScript, "function f(xs) {\n  for (const x of xs) { if (x) { return x ? 1 : 2 } }\n}\n", 4, 1},
		{"java catch", schema.LangJava, "class A { void f() { try { g(); } catch (Exception e) { h(); } } }\n", 2, 1},
		{"c while and or", schema.LangC, "int f(int a) { while (a > 0 || a < -5) { a--; } return a; }\n", 3, 1},
		{"rust match arms", schema.LangRust, "fn f(x: i32) -> i32 { match x { 1 => 1, 2 => 2, _ => 0 } }\n", 4, 1},
		{"python lambda", schema.LangPython, "f = lambda x: x\n", 1, 1},
		{"ruby if", schema.LangRuby, "def f(x)\n  if x\n    1\n  end\nend\n", 2, 1},
		{"ruby while", schema.LangRuby, "def f(x)\n  while x\n    x = nil\n  end\nend\n", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewAnalyzer().AnalyzeSource(context.Background(), []byte(tt.source), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.ccn, res.CCN, "ccn")
			assert.Equal(t, tt.functions, res.Functions, "functions")
		})
	}
}

func TestAnalyzer_Supports(t *testing.T) {
	a := NewAnalyzer()
	assert.True(t, IsAvailable())
	assert.True(t, a.Supports(schema.LangGo))
	assert.True(t, a.Supports(schema.LangLua))
	assert.False(t, a.Supports(schema.LangFortran))
	assert.False(t, a.Supports(schema.LangObjectiveC))

	_, err := a.AnalyzeSource(context.Background(), []byte("program x\nend\n"), schema.LangFortran)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestProvider_CCN(t *testing.T) {
	p, err := NewProvider(schema.CCNMetric)
	require.NoError(t, err)

	fc, err := p.Analyze(context.Background(), absTestdata(t, "branchy.go"))
	require.NoError(t, err)
	assert.Equal(t, 10, fc.CCN)
	assert.Equal(t, 4, fc.Functions)

	_, err = p.Analyze(context.Background(), absTestdata(t, "sum.f90"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}
