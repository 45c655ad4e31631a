// Package classify assigns method categories to papers and extracts the
// method names mentioned in their text.
package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/paperclass/internal/model"
)

// Classifier labels records against a fixed taxonomy
type Classifier struct {
	baseline int
	taxonomy Taxonomy
	methods  []methodPattern
}

// RE2's \b only treats ASCII as word characters; these treat any Unicode
// letter, digit or underscore as part of a word.
const (
	wordStart = `(?:^|[^\pL\pN_])`
	wordEnd   = `(?:[^\pL\pN_]|$)`
)

type methodPattern struct {
	phrase  string
	pattern *regexp.Regexp
}

// NewClassifier creates a classifier. baseline is the corpus size the
// relevance percentage is measured against.
func NewClassifier(baseline int, taxonomy Taxonomy) (*Classifier, error) {
	if baseline <= 0 {
		return nil, fmt.Errorf("%w: baseline total must be positive, got %d", model.ErrConfiguration, baseline)
	}
	if err := taxonomy.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{
		baseline: baseline,
		taxonomy: taxonomy,
	}

	seen := make(map[string]bool)
	for _, set := range taxonomy.Sets() {
		for _, phrase := range set.phrases {
			if seen[phrase] {
				continue
			}
			seen[phrase] = true
			c.methods = append(c.methods, methodPattern{
				phrase:  phrase,
				pattern: regexp.MustCompile(wordStart + regexp.QuoteMeta(phrase) + wordEnd),
			})
		}
	}

	return c, nil
}

// Baseline returns the corpus size used for the relevance metric
func (c *Classifier) Baseline() int {
	return c.baseline
}

// Classify returns the record's category. Plain substring matching, first match wins:
// overlap set, then text mining, then vision, else other. The other set is not consulted.
func (c *Classifier) Classify(r model.Record) model.Category {
	text := searchText(r.Abstract, r.Title, r.Journal)

	containsBoth := c.taxonomy.Both.ContainsAny(text)
	containsTextMining := c.taxonomy.TextMining.ContainsAny(text)
	containsVision := c.taxonomy.ComputerVision.ContainsAny(text)

	switch {
	case containsBoth:
		return model.CategoryBoth
	case containsTextMining:
		return model.CategoryTextMining
	case containsVision:
		return model.CategoryComputerVision
	default:
		return model.CategoryOther
	}
}

// ExtractMethods returns every phrase from all four sets that occurs in the
// record as a whole word, sorted. It returns nil when nothing matches.
func (c *Classifier) ExtractMethods(r model.Record) []string {
	text := searchText(r.Abstract, r.Journal, r.Title)

	var found []string
	for _, m := range c.methods {
		if m.pattern.MatchString(text) {
			found = append(found, m.phrase)
		}
	}
	sort.Strings(found)
	return found
}

// Label computes both the category and the extracted methods
func (c *Classifier) Label(r model.Record) model.Label {
	return model.Label{
		Category: c.Classify(r),
		Methods:  c.ExtractMethods(r),
	}
}

func searchText(fields ...string) string {
	return strings.ToLower(strings.Join(fields, " "))
}
