package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ppiankov/portmanteau/internal/cache"
	"github.com/ppiankov/portmanteau/internal/corpus"
	"github.com/ppiankov/portmanteau/internal/model"
	"github.com/ppiankov/portmanteau/internal/phonetic"
	"github.com/ppiankov/portmanteau/internal/portmanteau"
	"github.com/ppiankov/portmanteau/internal/stats"
	"github.com/ppiankov/portmanteau/internal/worker"
)

// Pipeline wires the corpus, phonetic engine, statistics and matcher
type Pipeline struct {
	dict      *corpus.Dictionary
	engine    *phonetic.Engine
	estimator *stats.Estimator
	memo      *cache.MemoryCache[float64] // nil when caching is disabled
	matcher   *portmanteau.Matcher
	renderer  *Renderer
	config    *model.Config
	logger    *slog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// NewPipeline loads the lexicon named in cfg and builds a pipeline over it
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	if cfg.Corpus.Path == "" {
		return nil, fmt.Errorf("no corpus configured (set corpus.path or --corpus)")
	}

	start := time.Now()
	loaded, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	p, err := New(cfg, loaded.Dictionary, opts...)
	if err != nil {
		return nil, err
	}

	p.logger.Info("corpus loaded",
		slog.String("path", cfg.Corpus.Path),
		slog.Int("lines", loaded.Stats.TotalLines),
		slog.Int("words", loaded.Stats.UniqueWords),
		slog.Int("invalid", loaded.Stats.InvalidLines),
		slog.Duration("took", time.Since(start)),
	)
	if loaded.Stats.InvalidLines > 0 {
		p.logger.Warn("skipped malformed lexicon lines", slog.Int("count", loaded.Stats.InvalidLines))
	}

	return p, nil
}

// New builds a pipeline over an already loaded dictionary
func New(cfg *model.Config, dict *corpus.Dictionary, opts ...Option) (*Pipeline, error) {
	engine, err := phonetic.NewEngine(cfg.Phonetics)
	if err != nil {
		return nil, fmt.Errorf("build phonetic engine: %w", err)
	}

	p := &Pipeline{
		dict:     dict,
		engine:   engine,
		renderer: NewRenderer(),
		config:   cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(p)
	}

	var estOpts []stats.Option
	if cfg.Cache.Enabled {
		p.memo = cache.NewMemoryCache[float64](cfg.Cache.TTL, cfg.Cache.TTL*2)
		estOpts = append(estOpts, stats.WithCache(p.memo))
	}
	p.estimator = stats.NewEstimator(dict, estOpts...)
	p.matcher = portmanteau.NewMatcher(MatcherConfig(cfg.Matcher), engine, p.estimator)

	return p, nil
}

// MatcherConfig converts the configured thresholds for the matcher
func MatcherConfig(c model.MatcherConfig) portmanteau.Config {
	return portmanteau.Config{
		MinVowelPhones:     c.MinVowelPhones,
		MinConsonantPhones: c.MinConsonantPhones,
		MaxOverlapDistance: c.MaxOverlapDistance,
	}
}

// Dictionary returns the loaded corpus
func (p *Pipeline) Dictionary() *corpus.Dictionary {
	return p.dict
}

// Estimator returns the corpus statistics estimator
func (p *Pipeline) Estimator() *stats.Estimator {
	return p.estimator
}

// Match looks both spellings up and matches them
func (p *Pipeline) Match(word1, word2 string) (portmanteau.Result, error) {
	w1, err := p.dict.Resolve(word1)
	if err != nil {
		return portmanteau.Result{}, err
	}
	w2, err := p.dict.Resolve(word2)
	if err != nil {
		return portmanteau.Result{}, err
	}

	res, err := p.matcher.Match(w1, w2)
	if err != nil {
		return portmanteau.Result{}, fmt.Errorf("match %s/%s: %w", word1, word2, err)
	}
	return res, nil
}

// Run matches every pair on the worker pool and builds a ranked report
func (p *Pipeline) Run(ctx context.Context, pairs []worker.Pair) *model.Report {
	start := time.Now()
	processor := worker.NewBatchProcessor(p.dict, p.matcher, p.config.Concurrency.Workers)
	results := processor.ProcessPairs(ctx, pairs)

	report := p.buildReport(results)

	p.logger.Info("batch finished",
		slog.Int("pairs", report.Summary.Pairs),
		slog.Int("found", report.Summary.Found),
		slog.Int("errors", report.Summary.Errors),
		slog.Duration("took", time.Since(start)),
	)
	if p.memo != nil {
		p.logger.Debug("statistics cache", slog.Int("entries", p.memo.Len()))
	}

	return report
}

// RunFile reads pairs from a file and runs them
func (p *Pipeline) RunFile(ctx context.Context, filePath string) (*model.Report, error) {
	pairs, err := worker.ReadPairsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read pairs: %w", err)
	}
	p.logger.Info("pairs loaded", slog.String("path", filePath), slog.Int("count", len(pairs)))

	return p.Run(ctx, pairs), nil
}

func (p *Pipeline) buildReport(results []*worker.PairResult) *model.Report {
	report := &model.Report{
		Corpus:      p.config.Corpus.Path,
		GeneratedAt: time.Now().UTC(),
		Settings: model.Settings{
			MinVowelPhones:     p.config.Matcher.MinVowelPhones,
			MinConsonantPhones: p.config.Matcher.MinConsonantPhones,
			MaxOverlapDistance: p.config.Matcher.MaxOverlapDistance,
		},
		Summary: model.Summary{
			Pairs:   len(results),
			Reasons: make(map[string]int),
		},
		Blends: []model.Blend{},
	}

	var candidates []*portmanteau.Candidate
	for _, r := range results {
		if r.Error != nil {
			report.Summary.Errors++
			report.Failures = append(report.Failures, model.Failure{
				Word1: r.Pair.Word1,
				Word2: r.Pair.Word2,
				Error: r.Error.Error(),
			})
			p.logger.Debug("pair failed",
				slog.String("pair", r.Pair.String()),
				slog.String("error", r.Error.Error()),
			)
			continue
		}

		report.Summary.Reasons[string(r.Result.Reason)]++
		if r.Result.Status == portmanteau.StatusOK {
			candidates = append(candidates, r.Result.Candidate)
		}
	}
	report.Summary.Found = len(candidates)

	portmanteau.Rank(candidates)
	if top := p.config.Output.Top; top > 0 && len(candidates) > top {
		candidates = candidates[:top]
	}
	for _, c := range candidates {
		report.Blends = append(report.Blends, c.Blend())
	}

	return report
}

// RenderReport renders the report to the specified outputs and prints the
// summary to stdout
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	// Render JSON
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	// Render Markdown
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Print summary to stdout
	p.renderer.RenderSummary(os.Stdout, report)

	return nil
}
