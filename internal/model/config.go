package model

import (
	"fmt"
	"time"
)

// Config is the complete runtime configuration
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Corpus      CorpusConfig      `yaml:"corpus"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
}

// InputConfig describes how the input table is read and normalized
type InputConfig struct {
	JournalColumn string   `yaml:"journal_column"` // Renamed to "Journal" on load
	DropColumns   []string `yaml:"drop_columns"`   // Removed if present
	Delimiter     string   `yaml:"delimiter"`      // Single character
}

// OutputConfig describes the exported files and console output
type OutputConfig struct {
	ClassificationFile string `yaml:"classification_file"`
	DetailedFile       string `yaml:"detailed_file"`
	SummaryJSON        string `yaml:"summary_json,omitempty"`
	SummaryMarkdown    string `yaml:"summary_md,omitempty"`
	Chart              bool   `yaml:"chart"`
	Progress           bool   `yaml:"progress"`
	Verbose            bool   `yaml:"verbose"`
}

// CorpusConfig carries dataset provenance
type CorpusConfig struct {
	// Baseline is the corpus size before any upstream filtering. Required.
	Baseline int `yaml:"baseline"`
}

// ConcurrencyConfig controls row labeling parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"` // 1 labels rows sequentially
}

// CacheConfig controls label memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// DefaultConfig returns the built-in defaults. Baseline is deliberately left unset.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			JournalColumn: "Journal/Book",
			DropColumns:   []string{"abstract_embedding", "similarity_score"},
			Delimiter:     ",",
		},
		Output: OutputConfig{
			ClassificationFile: "classified_papers.csv",
			DetailedFile:       "filtered_papers_with_methods.csv",
			Chart:              true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the values the pipeline cannot run without
func (c *Config) Validate() error {
	if c.Corpus.Baseline <= 0 {
		return fmt.Errorf("%w: corpus baseline must be positive, got %d", ErrConfiguration, c.Corpus.Baseline)
	}
	if len([]rune(c.Input.Delimiter)) != 1 {
		return fmt.Errorf("%w: delimiter must be a single character, got %q", ErrConfiguration, c.Input.Delimiter)
	}
	if c.Output.ClassificationFile == "" || c.Output.DetailedFile == "" {
		return fmt.Errorf("%w: classification and detailed output paths are required", ErrConfiguration)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune
func (c *Config) DelimiterRune() rune {
	r := []rune(c.Input.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}
