package complexity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/schema"
)

// cacheKey identifies one version of a file on disk.
type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

// Provider implements contract.ComplexityProvider for one metric.
type Provider struct {
	metric   schema.Metric
	analyzer *Analyzer
	cache    *lru.Cache[cacheKey, schema.FileComplexity]
}

var _ contract.ComplexityProvider = &Provider{} // Compile-time check

// Option configures a Provider.
type Option func(*Provider) error

// WithCache keeps up to size analyzed files in memory.
// Entries are invalidated when a file changes size or modification time.
func WithCache(size int) Option {
	return func(p *Provider) error {
		cache, err := lru.New[cacheKey, schema.FileComplexity](size)
		if err != nil {
			return fmt.Errorf("cannot create complexity cache: %w", err)
		}
		p.cache = cache
		return nil
	}
}

// NewProvider returns a provider for metric. It fails with ErrNoCGO when
// the metric needs a syntax tree and tree-sitter is not compiled in.
func NewProvider(metric schema.Metric, opts ...Option) (*Provider, error) {
	if _, ok := schema.ValidMetrics[metric]; !ok {
		return nil, fmt.Errorf("%w '%s'", schema.ErrUnknownMetric, metric)
	}
	if metric == schema.CCNMetric && !IsAvailable() {
		return nil, ErrNoCGO
	}
	p := &Provider{metric: metric, analyzer: NewAnalyzer()}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Metric returns the metric the provider was built for.
func (p *Provider) Metric() schema.Metric {
	return p.metric
}

// Analyze implements the contract.ComplexityProvider interface.
// Languages without a grammar are measured lexically and only support NLOC.
func (p *Provider) Analyze(ctx context.Context, absPath string) (schema.FileComplexity, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return schema.FileComplexity{}, err
	}
	key := cacheKey{path: absPath, size: info.Size(), modTime: info.ModTime().UnixNano()}
	if p.cache != nil {
		if fc, ok := p.cache.Get(key); ok {
			return fc, nil
		}
	}

	source, err := os.ReadFile(absPath)
	if err != nil {
		return schema.FileComplexity{}, err
	}
	lang, err := DetectLanguage(absPath, source)
	if err != nil {
		return schema.FileComplexity{}, err
	}

	fc := schema.FileComplexity{Path: absPath, Language: string(lang)}
	res, err := p.analyzer.AnalyzeSource(ctx, source, lang)
	switch {
	case err == nil:
		fc.CCN, fc.NLOC, fc.Functions = res.CCN, res.NLOC, res.Functions
	case p.metric == schema.NLOCMetric && (errors.Is(err, ErrUnsupportedLanguage) || errors.Is(err, ErrNoCGO)):
		slog.Debug("Counting lines lexically", "file", absPath, "language", lang)
		fc.NLOC = CountNLOC(source, lang)
	default:
		return schema.FileComplexity{}, fmt.Errorf("cannot analyze %s: %w", absPath, err)
	}

	if p.cache != nil {
		p.cache.Add(key, fc)
	}
	return fc, nil
}
