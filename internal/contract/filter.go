package contract

import (
	"strings"

	"github.com/huangsam/outlier/schema"
	"github.com/src-d/enry/v2"
)

// Accepts reports whether a repository-relative path should be analyzed.
// The extension must belong to a selected language and the path must survive
// the prefix filter, the exclude globs and the vendor check.
func (c *Config) Accepts(path string) bool {
	if !schema.HasEnding(path, c.Endings) {
		return false
	}
	if c.PathFilter != "" && !strings.HasPrefix(path, c.PathFilter) {
		return false
	}
	if c.IsExcluded(path) {
		return false
	}
	if c.SkipVendor && enry.IsVendor(path) {
		return false
	}
	return true
}

// IsExcluded reports whether path matches any exclude glob, either as a whole
// or by its base name.
func (c *Config) IsExcluded(path string) bool {
	base := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		base = path[idx+1:]
	}
	for _, g := range c.excludeGlobs {
		if g.Match(path) || g.Match(base) {
			return true
		}
	}
	return false
}
