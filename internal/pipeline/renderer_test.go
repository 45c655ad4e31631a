package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/paperclass/internal/model"
)

func sampleSummary() model.Summary {
	return model.Summary{
		Total:                4,
		RelevantCount:        4,
		Baseline:             8,
		RelevantPercentage:   50,
		IrrelevantPercentage: 50,
		Distribution: map[model.Category]int{
			model.CategoryOther:      2,
			model.CategoryBoth:       1,
			model.CategoryTextMining: 1,
		},
	}
}

func TestRenderSummary(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out).RenderSummary(sampleSummary())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Filtered Out Percentage: Approximately 50.00% of the papers were filtered out as irrelevant, leaving 50.00% as relevant for further analysis.", lines[0])
	assert.Equal(t, "method_type", lines[1])
	assert.Equal(t, "other            2", lines[2])
	assert.Equal(t, "both             1", lines[3])
	assert.Equal(t, "text_mining      1", lines[4])
}

func TestChart(t *testing.T) {
	chart, err := Chart(sampleSummary())
	require.NoError(t, err)

	assert.Contains(t, chart, chartTitle)
	assert.Contains(t, chart, " 50.0% (2)")
	assert.Contains(t, chart, " 25.0% (1)")
	for _, label := range []string{"other", "both", "text_mining"} {
		assert.Contains(t, chart, label)
	}
	assert.NotContains(t, chart, "computer_vision")
}

func TestChart_Empty(t *testing.T) {
	_, err := Chart(model.Summary{Distribution: map[model.Category]int{}})
	assert.ErrorIs(t, err, errEmptyChart)
}
