package contract

import (
	"testing"

	"github.com/huangsam/outlier/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilterConfig(t *testing.T, langs []schema.Language, excludes ...string) *Config {
	t.Helper()
	cfg := &Config{Endings: schema.EndingsFor(langs)}
	for _, ex := range excludes {
		require.NoError(t, cfg.AddExclude(ex))
	}
	return cfg
}

func TestConfig_Accepts(t *testing.T) {
	cfg := newFilterConfig(t, []schema.Language{schema.LangGo, schema.LangPython}, "**_test.go", "gen/**", "*.pb.go")

	tests := []struct {
		path     string
		expected bool
	}{
		{"main.go", true},
		{"pkg/util.py", true},
		{"README.md", false},
		{"Makefile", false},
		{"pkg/util_test.go", false},
		{"gen/api/client.go", false},
		{"api/types.pb.go", false},
		{"scripts/.hidden", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.Accepts(tt.path))
		})
	}
}

func TestConfig_AcceptsPathFilterAndVendor(t *testing.T) {
	cfg := newFilterConfig(t, []schema.Language{schema.LangGo})
	cfg.PathFilter = "core/"
	cfg.SkipVendor = true

	assert.True(t, cfg.Accepts("core/agg/agg.go"))
	assert.False(t, cfg.Accepts("cmd/root.go"))
	assert.False(t, cfg.Accepts("core/vendor/github.com/x/y.go"))

	cfg.SkipVendor = false
	assert.True(t, cfg.Accepts("core/vendor/github.com/x/y.go"))
}

func TestConfig_AcceptsDefaultKeepsVendorLikePaths(t *testing.T) {
	cfg := newFilterConfig(t, schema.AllLanguages())
	require.False(t, cfg.SkipVendor)

	for _, path := range []string{"cache/a.go", "deps/a.c", "dist/app.js", "extern/lib.c", "test/fixtures/a.py", "vendor/x/y.go"} {
		t.Run(path, func(t *testing.T) {
			assert.True(t, cfg.Accepts(path))
		})
	}
}

func TestConfig_AddExcludeInvalid(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.AddExclude("[unclosed"))
	assert.Empty(t, cfg.Excludes)
}

func TestConfig_Clone(t *testing.T) {
	cfg := newFilterConfig(t, []schema.Language{schema.LangGo}, "*.pb.go")
	clone := cfg.Clone()
	clone.Endings[0] = ".changed"
	require.NoError(t, clone.AddExclude("other/**"))

	assert.Equal(t, ".go", cfg.Endings[0])
	assert.Len(t, cfg.Excludes, 1)
	assert.Len(t, clone.Excludes, 2)
}
