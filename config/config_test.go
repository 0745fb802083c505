package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/condmask/condition"
	"github.com/vegasq/condmask/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Equal(t, condition.DefaultTableName, cfg.Render.TableName)
	assert.Equal(t, condition.DefaultLimits(), cfg.Limits)
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(t *testing.T, cfg config.Config)
	}{
		{
			name: "empty keeps defaults",
			data: "",
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, config.Default(), cfg)
			},
		},
		{
			name: "overrides",
			data: "format: csv\nlimit: 10\nlog_level: debug\nrender:\n  table_name: frame\n  word_operators: true\n",
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "csv", cfg.Format)
				assert.Equal(t, 10, cfg.Limit)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, condition.RenderOptions{TableName: "frame", WordOperators: true}, cfg.Render)
				assert.Equal(t, condition.DefaultLimits(), cfg.Limits)
			},
		},
		{
			name: "partial limits",
			data: "limits:\n  max_depth: 5\n",
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 5, cfg.Limits.MaxDepth)
				assert.Equal(t, condition.DefaultMaxTokens, cfg.Limits.MaxTokens)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromYAML([]byte(tt.data))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestFromYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "format: [csv"},
		{"unknown key", "colour: red\n"},
		{"bad format", "format: xml\n"},
		{"negative limit", "limit: -1\n"},
		{"bad log level", "log_level: trace\n"},
		{"negative max depth", "limits:\n  max_depth: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "condmask.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: table\n"), 0o644))

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Format)

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEvaluatorOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Render.WordOperators = true
	cfg.Limits.MaxDepth = 1

	ev := condition.NewEvaluator(cfg.EvaluatorOptions())

	_, err := ev.Parse("[[a > 1]]")
	assert.ErrorIs(t, err, condition.ErrNestingTooDeep)

	_, err = ev.Parse("a > 1 or b > 2")
	require.NoError(t, err)
	assert.Equal(t, `(df["a"] > 1) or (df["b"] > 2)`, ev.Statement())
}
