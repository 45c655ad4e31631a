package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/paperclass/internal/model"
)

// Labeler labels a single record
type Labeler interface {
	Label(r model.Record) model.Label
}

// Progress is notified once per labeled record
type Progress interface {
	Increment()
}

// LabelJob labels the record at one row index
type LabelJob struct {
	Index    int
	Record   model.Record
	Labeler  Labeler
	Progress Progress
}

// Execute executes the label job
func (j *LabelJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &LabelResult{Index: j.Index, Error: err}
	}
	label := j.Labeler.Label(j.Record)
	if j.Progress != nil {
		j.Progress.Increment()
	}
	return &LabelResult{Index: j.Index, Label: label}
}

// LabelResult represents the result of a label job
type LabelResult struct {
	Index int
	Label model.Label
	Error error
}

// GetError returns the error from the label result
func (r *LabelResult) GetError() error {
	return r.Error
}

// BatchProcessor labels a table's records, optionally in parallel.
// Output order always matches input order.
type BatchProcessor struct {
	labeler     Labeler
	concurrency int
	progress    Progress
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(labeler Labeler, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		labeler:     labeler,
		concurrency: concurrency,
		logger:      zap.NewNop(),
	}
}

// WithProgress reports each labeled record to p
func (b *BatchProcessor) WithProgress(p Progress) *BatchProcessor {
	b.progress = p
	return b
}

// WithLogger sets the logger
func (b *BatchProcessor) WithLogger(logger *zap.Logger) *BatchProcessor {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// ProcessRecords labels every record and returns the labels in input order
func (b *BatchProcessor) ProcessRecords(ctx context.Context, records []model.Record) ([]model.Label, error) {
	if len(records) == 0 {
		return []model.Label{}, nil
	}

	b.logger.Debug("Labeling records",
		zap.Int("records", len(records)),
		zap.Int("workers", b.concurrency))

	if b.concurrency == 1 {
		return b.processSequential(ctx, records)
	}
	return b.processParallel(ctx, records)
}

func (b *BatchProcessor) processSequential(ctx context.Context, records []model.Record) ([]model.Label, error) {
	labels := make([]model.Label, len(records))
	for i, r := range records {
		job := &LabelJob{Index: i, Record: r, Labeler: b.labeler, Progress: b.progress}
		result := job.Execute(ctx).(*LabelResult)
		if result.Error != nil {
			return nil, fmt.Errorf("label row %d: %w", i, result.Error)
		}
		labels[i] = result.Label
	}
	return labels, nil
}

func (b *BatchProcessor) processParallel(ctx context.Context, records []model.Record) ([]model.Label, error) {
	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, r := range records {
		job := &LabelJob{Index: i, Record: r, Labeler: b.labeler, Progress: b.progress}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	labels := make([]model.Label, len(records))
	done := make([]bool, len(records))
	for _, res := range results {
		lr := res.(*LabelResult)
		if lr.Error != nil {
			return nil, fmt.Errorf("label row %d: %w", lr.Index, lr.Error)
		}
		labels[lr.Index] = lr.Label
		done[lr.Index] = true
	}

	for i, ok := range done {
		if !ok {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("label row %d: %w", i, err)
			}
			return nil, fmt.Errorf("label row %d: no result", i)
		}
	}

	return labels, nil
}
