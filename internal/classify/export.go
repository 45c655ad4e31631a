package classify

import (
	"fmt"

	"github.com/ppiankov/paperclass/internal/model"
	"github.com/ppiankov/paperclass/internal/table"
)

// Result holds the two output tables and the run summary
type Result struct {
	Classification *table.Table // Title, Abstract, Journal, method_type
	Detailed       *table.Table // Every input column plus method_type, methods_used
	Summary        model.Summary
}

// ClassifyAndExport labels every row of t sequentially and assembles the outputs.
// t gains the method_type and methods_used columns in place.
func (c *Classifier) ClassifyAndExport(t *table.Table) (*Result, error) {
	labels := make([]model.Label, t.Len())
	for i := range t.Rows {
		labels[i] = c.Label(t.Record(i))
	}
	return Assemble(t, labels, c.baseline)
}

// Assemble adds the derived columns to t from precomputed labels, one per row in
// row order, and builds the classification table and summary.
func Assemble(t *table.Table, labels []model.Label, baseline int) (*Result, error) {
	if len(labels) != t.Len() {
		return nil, fmt.Errorf("got %d labels for %d rows", len(labels), t.Len())
	}
	if baseline <= 0 {
		return nil, fmt.Errorf("%w: baseline total must be positive, got %d", model.ErrConfiguration, baseline)
	}

	methodTypes := make([]string, len(labels))
	methodsUsed := make([]string, len(labels))
	for i, l := range labels {
		methodTypes[i] = string(l.Category)
		methodsUsed[i] = l.MethodsUsed()
	}

	if err := t.AddColumn(table.ColumnMethodType, methodTypes); err != nil {
		return nil, err
	}
	classification, err := t.Project(table.ColumnTitle, table.ColumnAbstract, table.ColumnJournal, table.ColumnMethodType)
	if err != nil {
		return nil, err
	}
	if err := t.AddColumn(table.ColumnMethodsUsed, methodsUsed); err != nil {
		return nil, err
	}

	return &Result{
		Classification: classification,
		Detailed:       t,
		Summary:        Summarize(labels, baseline),
	}, nil
}

// Summarize computes the relevance metric and category distribution.
// Percentages are not clamped: a baseline smaller than the table yields values outside [0, 100].
func Summarize(labels []model.Label, baseline int) model.Summary {
	s := model.Summary{
		Total:        len(labels),
		Baseline:     baseline,
		Distribution: make(map[model.Category]int),
	}

	for _, l := range labels {
		s.Distribution[l.Category]++
		if l.Category.IsRelevant() {
			s.RelevantCount++
		}
	}

	if baseline > 0 {
		s.RelevantPercentage = float64(s.RelevantCount) / float64(baseline) * 100
	}
	s.IrrelevantPercentage = 100 - s.RelevantPercentage

	return s
}
