package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/paperclass/internal/model"
	"github.com/ppiankov/paperclass/internal/pipeline"
)

var (
	noChart bool
	noCache bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <input.csv>",
	Short: "Classify papers by method type and extract method names",
	Long: `Classify reads a table of papers and:
- Assigns each paper a method type (both, text_mining, computer_vision, other)
- Extracts every method keyword mentioned as a whole word
- Writes a classification table and a detailed table
- Reports what share of the original corpus remains relevant
- Prints the method type distribution as a chart

The baseline is the size of the corpus before any upstream filtering and is required.

Example:
  paperclass classify papers.csv --baseline 11450
  paperclass classify papers.csv --baseline 11450 --workers 8 --summary-json summary.json
  PAPERCLASS_CORPUS_BASELINE=11450 paperclass classify papers.csv --no-chart`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	defaults := model.DefaultConfig()
	flags := classifyCmd.Flags()

	// Corpus flags
	flags.Int("baseline", 0, "corpus size before upstream filtering (required)")

	// Input flags
	flags.String("journal-column", defaults.Input.JournalColumn, "input column renamed to Journal")
	flags.StringSlice("drop-columns", defaults.Input.DropColumns, "optional input columns to drop")
	flags.String("delimiter", defaults.Input.Delimiter, "field delimiter for input and output tables")

	// Output flags
	flags.String("out-classification", defaults.Output.ClassificationFile, "classification table path")
	flags.String("out-detailed", defaults.Output.DetailedFile, "detailed table path")
	flags.String("summary-json", "", "summary JSON path (optional)")
	flags.String("summary-md", "", "summary Markdown path (optional)")
	flags.Bool("progress", false, "show a labeling progress bar")
	flags.BoolVar(&noChart, "no-chart", false, "skip the distribution chart")

	// Processing flags
	flags.Int("workers", defaults.Concurrency.Workers, "number of labeling workers")
	flags.BoolVar(&noCache, "no-cache", false, "disable label memoization")
	flags.Duration("cache-ttl", defaults.Cache.TTL, "label cache entry lifetime")

	for key, flag := range map[string]string{
		"corpus.baseline":            "baseline",
		"input.journal_column":       "journal-column",
		"input.drop_columns":         "drop-columns",
		"input.delimiter":            "delimiter",
		"output.classification_file": "out-classification",
		"output.detailed_file":       "out-detailed",
		"output.summary_json":        "summary-json",
		"output.summary_md":          "summary-md",
		"output.progress":            "progress",
		"concurrency.workers":        "workers",
		"cache.ttl":                  "cache-ttl",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	input := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := buildConfig(viper.GetViper())
	if noChart {
		cfg.Output.Chart = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Input:      %s\n", input)
		fmt.Fprintf(os.Stderr, "Baseline:   %d\n", cfg.Corpus.Baseline)
		fmt.Fprintf(os.Stderr, "Workers:    %d\n", cfg.Concurrency.Workers)
		fmt.Fprintf(os.Stderr, "Cache:      %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg,
		pipeline.WithLogger(logger),
		pipeline.WithOutput(cmd.OutOrStdout()),
		pipeline.WithProgressOutput(cmd.ErrOrStderr()),
	)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	logger.Debug("Classification complete",
		zap.Int("rows", result.Result.Summary.Total),
		zap.String("classification", result.ClassificationPath),
		zap.String("detailed", result.DetailedPath))

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote classification table: %s\n", result.ClassificationPath)
		fmt.Fprintf(os.Stderr, "✓ Wrote detailed table: %s\n", result.DetailedPath)
	}

	return nil
}

// buildConfig layers config file, environment and flag values over the defaults
func buildConfig(v *viper.Viper) *model.Config {
	cfg := model.DefaultConfig()

	if v.IsSet("corpus.baseline") {
		cfg.Corpus.Baseline = v.GetInt("corpus.baseline")
	}

	if v.IsSet("input.journal_column") {
		cfg.Input.JournalColumn = v.GetString("input.journal_column")
	}
	if v.IsSet("input.drop_columns") {
		cfg.Input.DropColumns = v.GetStringSlice("input.drop_columns")
	}
	if v.IsSet("input.delimiter") {
		cfg.Input.Delimiter = v.GetString("input.delimiter")
	}

	if v.IsSet("output.classification_file") {
		cfg.Output.ClassificationFile = v.GetString("output.classification_file")
	}
	if v.IsSet("output.detailed_file") {
		cfg.Output.DetailedFile = v.GetString("output.detailed_file")
	}
	if v.IsSet("output.summary_json") {
		cfg.Output.SummaryJSON = v.GetString("output.summary_json")
	}
	if v.IsSet("output.summary_md") {
		cfg.Output.SummaryMarkdown = v.GetString("output.summary_md")
	}
	if v.IsSet("output.chart") {
		cfg.Output.Chart = v.GetBool("output.chart")
	}
	if v.IsSet("output.progress") {
		cfg.Output.Progress = v.GetBool("output.progress")
	}
	if v.IsSet("output.verbose") {
		cfg.Output.Verbose = v.GetBool("output.verbose")
	}

	if v.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = v.GetInt("concurrency.workers")
	}

	if v.IsSet("cache.enabled") {
		cfg.Cache.Enabled = v.GetBool("cache.enabled")
	}
	if v.IsSet("cache.ttl") {
		cfg.Cache.TTL = v.GetDuration("cache.ttl")
	}

	return cfg
}
