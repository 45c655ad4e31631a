package model

import (
	"fmt"
	"sort"
)

// Summary is the aggregate outcome of one classification run
type Summary struct {
	Total                int              `json:"total"`                 // Rows in the loaded table
	RelevantCount        int              `json:"relevant_count"`        // Rows with a relevant category
	Baseline             int              `json:"baseline"`              // Corpus size before upstream filtering
	RelevantPercentage   float64          `json:"relevant_percentage"`   // 100 * relevant / baseline
	IrrelevantPercentage float64          `json:"irrelevant_percentage"` // 100 - relevant percentage
	Distribution         map[Category]int `json:"distribution"`          // Chart-ready category counts
}

// CategoryCount is one entry of the distribution
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Counts returns the distribution ordered by count (descending), ties broken by label
func (s Summary) Counts() []CategoryCount {
	counts := make([]CategoryCount, 0, len(s.Distribution))
	for c, n := range s.Distribution {
		counts = append(counts, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	return counts
}

// RelevanceLine is the human-readable relevance report
func (s Summary) RelevanceLine() string {
	return fmt.Sprintf("Filtered Out Percentage: Approximately %.2f%% of the papers were filtered out as irrelevant, leaving %.2f%% as relevant for further analysis.",
		s.IrrelevantPercentage, s.RelevantPercentage)
}
