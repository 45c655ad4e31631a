package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/paperclass/internal/model"
)

func TestBuildConfig_Defaults(t *testing.T) {
	cfg := buildConfig(viper.New())
	assert.Equal(t, model.DefaultConfig(), cfg)
	assert.Error(t, cfg.Validate(), "baseline has no default")
}

func TestBuildConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("corpus.baseline", 11450)
	v.Set("input.journal_column", "Source")
	v.Set("input.drop_columns", []string{"vec"})
	v.Set("output.detailed_file", "out/detailed.csv")
	v.Set("output.chart", false)
	v.Set("concurrency.workers", 8)
	v.Set("cache.enabled", false)
	v.Set("cache.ttl", "1m")

	cfg := buildConfig(v)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 11450, cfg.Corpus.Baseline)
	assert.Equal(t, "Source", cfg.Input.JournalColumn)
	assert.Equal(t, []string{"vec"}, cfg.Input.DropColumns)
	assert.Equal(t, "out/detailed.csv", cfg.Output.DetailedFile)
	assert.Equal(t, "classified_papers.csv", cfg.Output.ClassificationFile)
	assert.False(t, cfg.Output.Chart)
	assert.Equal(t, 8, cfg.Concurrency.Workers)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
}

func TestBuildConfig_VerboseFromConfig(t *testing.T) {
	v := viper.New()
	assert.False(t, buildConfig(v).Output.Verbose)
	assert.Equal(t, zapcore.WarnLevel, logLevel(v))

	v.Set("output.verbose", true)
	assert.True(t, buildConfig(v).Output.Verbose)
	assert.Equal(t, zapcore.DebugLevel, logLevel(v))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".paperclass", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# paperclass configuration file"))

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "Journal/Book", cfg.Input.JournalColumn)
	assert.Equal(t, 0, cfg.Corpus.Baseline)

	err = writeDefaultConfig(path)
	assert.ErrorContains(t, err, "already exists")
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "papers.csv")
	require.NoError(t, os.WriteFile(input, []byte("Title,Abstract,Journal/Book\nT,A transformer architecture is applied.,J\n"), 0644))
	classification := filepath.Join(dir, "classified.csv")
	detailed := filepath.Join(dir, "detailed.csv")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"classify", input,
		"--baseline", "4",
		"--out-classification", classification,
		"--out-detailed", detailed,
		"--no-chart",
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())

	data, err := os.ReadFile(classification)
	require.NoError(t, err)
	assert.Equal(t, "Title,Abstract,Journal,method_type\nT,A transformer architecture is applied.,J,both\n", string(data))

	data, err = os.ReadFile(detailed)
	require.NoError(t, err)
	assert.Contains(t, string(data), ",both,transformer architecture\n")

	assert.Contains(t, out.String(), "Approximately 75.00% of the papers were filtered out as irrelevant, leaving 25.00% as relevant")
	assert.Contains(t, out.String(), "both             1")
}
