package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/paperclass/internal/model"
)

const chartTitle = "Trends in Method Types for Relevant Papers"

// chartWidth is the length of the longest bar in cells
const chartWidth = 40

var errEmptyChart = errors.New("no rows to chart")

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true)
	chartBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	categoryColors  = map[model.Category]lipgloss.Color{
		model.CategoryBoth:           lipgloss.Color("205"),
		model.CategoryTextMining:     lipgloss.Color("39"),
		model.CategoryComputerVision: lipgloss.Color("214"),
		model.CategoryOther:          lipgloss.Color("245"),
	}
)

// Renderer writes run summaries to the console and to report files
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer printing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// RenderSummary prints the relevance line and the category tabulation
func (r *Renderer) RenderSummary(s model.Summary) {
	fmt.Fprintln(r.out, s.RelevanceLine())
	fmt.Fprintln(r.out, "method_type")
	for _, cc := range s.Counts() {
		fmt.Fprintf(r.out, "%-16s %d\n", cc.Category, cc.Count)
	}
}

// RenderJSON writes the summary, including the chart-ready distribution, as JSON
func (r *Renderer) RenderJSON(s model.Summary, path string) error {
	data, err := json.MarshalIndent(struct {
		model.Summary
		Counts []model.CategoryCount `json:"counts"`
	}{s, s.Counts()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("%w: write summary JSON: %v", model.ErrIO, err)
	}
	return nil
}

// RenderMarkdown writes the summary as a Markdown report
func (r *Renderer) RenderMarkdown(s model.Summary, path string) error {
	var b strings.Builder

	b.WriteString("# Method Type Summary\n\n")
	fmt.Fprintf(&b, "- Papers classified: %d\n", s.Total)
	fmt.Fprintf(&b, "- Baseline corpus: %d\n", s.Baseline)
	fmt.Fprintf(&b, "- Relevant: %.2f%%\n", s.RelevantPercentage)
	fmt.Fprintf(&b, "- Filtered out: %.2f%%\n\n", s.IrrelevantPercentage)

	b.WriteString("| Method type | Papers | Share |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, cc := range s.Counts() {
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", cc.Category, cc.Count, share(cc.Count, s.Total))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("%w: write summary Markdown: %v", model.ErrIO, err)
	}
	return nil
}

// RenderChart prints the category distribution as a labeled bar chart
func (r *Renderer) RenderChart(s model.Summary) error {
	chart, err := Chart(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, chart)
	return err
}

// Chart draws the distribution with one bar per category, scaled to the total,
// annotated with its share and count.
func Chart(s model.Summary) (string, error) {
	total := 0
	for _, n := range s.Distribution {
		total += n
	}
	if total == 0 {
		return "", errEmptyChart
	}

	counts := s.Counts()
	labelWidth := 0
	for _, cc := range counts {
		if len(cc.Category) > labelWidth {
			labelWidth = len(cc.Category)
		}
	}

	lines := []string{chartTitleStyle.Render(chartTitle), ""}
	for _, cc := range counts {
		pct := share(cc.Count, total)
		cells := int(pct/100*chartWidth + 0.5)
		if cells == 0 && cc.Count > 0 {
			cells = 1
		}

		bar := lipgloss.NewStyle().
			Foreground(colorFor(cc.Category)).
			Render(strings.Repeat("█", cells))

		lines = append(lines, fmt.Sprintf("%-*s %s%s %5.1f%% (%d)",
			labelWidth, cc.Category, bar, strings.Repeat(" ", chartWidth-cells), pct, cc.Count))
	}

	return chartBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)), nil
}

func colorFor(c model.Category) lipgloss.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return lipgloss.Color("250")
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
