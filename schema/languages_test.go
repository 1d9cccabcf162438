package schema

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllLanguages(t *testing.T) {
	langs := AllLanguages()
	assert.Len(t, langs, len(LanguageExtensions))
	assert.True(t, slices.IsSorted(langs))
	assert.Equal(t, LangC, langs[0])
}

func TestEndingsFor(t *testing.T) {
	endings := EndingsFor([]Language{LangC, LangCPP, Language("cobol")})
	assert.Equal(t, []string{".c", ".h", ".cpp", ".cc", ".mm", ".cxx", ".hpp"}, endings)
	assert.Empty(t, EndingsFor(nil))
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", ".go"},
		{"src/a.tar.gz", ".gz"},
		{".bashrc", ""},
		{"dir/..hidden.py", ".py"},
		{"Makefile", ""},
		{"dir.d/file", ""},
		{`win\path\x.rs`, ".rs"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.path))
		})
	}
}

func TestHasEnding(t *testing.T) {
	endings := EndingsFor([]Language{LangGo, LangPython})
	assert.True(t, HasEnding("cmd/main.go", endings))
	assert.True(t, HasEnding("tool.py", endings))
	assert.False(t, HasEnding("README.md", endings))
	assert.False(t, HasEnding(".go", endings))
}

func TestMetricSelect(t *testing.T) {
	fc := FileComplexity{CCN: 7, NLOC: 42}

	v, err := CCNMetric.Select(fc)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = NLOCMetric.Select(fc)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Metric("LOC").Select(fc)
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
