package model

import "strings"

// Record is the slice of a paper row the classifier reads
type Record struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Journal  string `json:"journal"`
}

// Category is the method type assigned to a paper
type Category string

const (
	CategoryBoth           Category = "both"            // Overlap keyword present
	CategoryTextMining     Category = "text_mining"     // Text-mining keyword present
	CategoryComputerVision Category = "computer_vision" // Vision keyword present
	CategoryOther          Category = "other"           // Nothing above matched
)

// Categories lists every category in precedence order
func Categories() []Category {
	return []Category{
		CategoryBoth,
		CategoryTextMining,
		CategoryComputerVision,
		CategoryOther,
	}
}

// IsRelevant reports whether a paper with this category counts toward the relevance metric
func (c Category) IsRelevant() bool {
	switch c {
	case CategoryBoth, CategoryTextMining, CategoryComputerVision, CategoryOther:
		return true
	default:
		return false
	}
}

// NoMethods is written to methods_used when no keyword matched
const NoMethods = "None"

// Label holds both per-record decisions
type Label struct {
	Category Category `json:"method_type"`
	Methods  []string `json:"methods,omitempty"` // Sorted, deduplicated keyword phrases
}

// MethodsUsed renders Methods as the methods_used cell
func (l Label) MethodsUsed() string {
	if len(l.Methods) == 0 {
		return NoMethods
	}
	return strings.Join(l.Methods, ", ")
}
