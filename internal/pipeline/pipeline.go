package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/paperclass/internal/cache"
	"github.com/ppiankov/paperclass/internal/classify"
	"github.com/ppiankov/paperclass/internal/model"
	"github.com/ppiankov/paperclass/internal/table"
	"github.com/ppiankov/paperclass/internal/worker"
)

// Pipeline orchestrates a complete classification run
type Pipeline struct {
	classifier *classify.Classifier
	cache      cache.Cache // nil if disabled
	renderer   *Renderer
	config     *model.Config
	logger     *zap.Logger
	progressW  io.Writer
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithOutput redirects the console report (summary, tabulation, chart)
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.renderer = NewRenderer(w)
	}
}

// WithProgressOutput redirects the progress bar
func WithProgressOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.progressW = w
	}
}

// NewPipeline creates a pipeline using the built-in taxonomy
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	return NewPipelineWithTaxonomy(cfg, classify.DefaultTaxonomy(), opts...)
}

// NewPipelineWithTaxonomy creates a pipeline with an explicit keyword taxonomy
func NewPipelineWithTaxonomy(cfg *model.Config, taxonomy classify.Taxonomy, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	classifier, err := classify.NewClassifier(cfg.Corpus.Baseline, taxonomy)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		classifier: classifier,
		renderer:   NewRenderer(os.Stdout),
		config:     cfg,
		logger:     zap.NewNop(),
		progressW:  os.Stderr,
	}
	if cfg.Cache.Enabled {
		p.cache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// RunResult contains the outcome of a run
type RunResult struct {
	Result             *classify.Result
	ClassificationPath string
	DetailedPath       string
}

// Run loads the input table, labels every row, writes both output tables and
// reports the summary. Reports and the chart are rendered after both tables are
// on disk; their failures are logged, not returned.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*RunResult, error) {
	cfg := p.config
	delim := cfg.DelimiterRune()

	// 1. Load and normalize the input table
	tbl, err := table.Load(inputPath, table.LoadOptions{
		Delimiter:     delim,
		JournalColumn: cfg.Input.JournalColumn,
		DropColumns:   cfg.Input.DropColumns,
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	p.logger.Info("Loaded input table",
		zap.String("path", inputPath),
		zap.Int("rows", tbl.Len()),
		zap.Strings("columns", tbl.Header))

	// 2. Label every row
	labels, err := p.Label(ctx, tbl.Records())
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}

	// 3. Derive output tables and summary
	result, err := classify.Assemble(tbl, labels, p.classifier.Baseline())
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	// 4. Write the classification table, then the detailed table
	if err := result.Classification.Save(cfg.Output.ClassificationFile, delim); err != nil {
		return nil, fmt.Errorf("save classification: %w", err)
	}
	p.logger.Info("Wrote classification table", zap.String("path", cfg.Output.ClassificationFile))

	if err := result.Detailed.Save(cfg.Output.DetailedFile, delim); err != nil {
		return nil, fmt.Errorf("save detailed: %w", err)
	}
	p.logger.Info("Wrote detailed table", zap.String("path", cfg.Output.DetailedFile))

	// 5. Report
	p.renderer.RenderSummary(result.Summary)

	if path := cfg.Output.SummaryJSON; path != "" {
		if err := p.renderer.RenderJSON(result.Summary, path); err != nil {
			p.logger.Warn("Failed to write summary JSON", zap.String("path", path), zap.Error(err))
		}
	}
	if path := cfg.Output.SummaryMarkdown; path != "" {
		if err := p.renderer.RenderMarkdown(result.Summary, path); err != nil {
			p.logger.Warn("Failed to write summary Markdown", zap.String("path", path), zap.Error(err))
		}
	}

	// 6. Chart last so a rendering failure never touches the tables
	if cfg.Output.Chart {
		if err := p.renderer.RenderChart(result.Summary); err != nil {
			p.logger.Warn("Failed to render chart", zap.Error(err))
		}
	}

	return &RunResult{
		Result:             result,
		ClassificationPath: cfg.Output.ClassificationFile,
		DetailedPath:       cfg.Output.DetailedFile,
	}, nil
}

// Label labels records in input order, using the cache, worker pool and
// progress bar as configured.
func (p *Pipeline) Label(ctx context.Context, records []model.Record) ([]model.Label, error) {
	var labeler worker.Labeler = p.classifier
	var memo *cachedLabeler
	if p.cache != nil {
		memo = newCachedLabeler(p.classifier, p.cache)
		labeler = memo
	}

	processor := worker.NewBatchProcessor(labeler, p.config.Concurrency.Workers).
		WithLogger(p.logger)

	if p.config.Output.Progress && len(records) > 0 {
		progress, bar := newProgressBar(p.progressW, len(records))
		processor.WithProgress(bar)
		defer func() {
			if !bar.Completed() {
				bar.Abort(false)
			}
			progress.Wait()
		}()
	}

	labels, err := processor.ProcessRecords(ctx, records)
	if err != nil {
		return nil, err
	}

	if memo != nil {
		hits, misses := memo.stats()
		p.logger.Debug("Label cache", zap.Int64("hits", hits), zap.Int64("misses", misses))
	}

	return labels, nil
}
