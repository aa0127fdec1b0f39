package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.fluent/pkg/check"
	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/logging"
	"digital.vasic.fluent/pkg/message"
	"digital.vasic.fluent/pkg/metrics"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, compare.DefaultOptions(), cfg.Compare)
	assert.Equal(t, message.DefaultFormatConfig(), cfg.Format)
	assert.Equal(t, LogNone, cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLKeepsUnsetDefaults(t *testing.T) {
	path := writeFile(t, "fluent.yaml", `
compare:
  difference_threshold: 0.01
  tolerance_hint_threshold: 0.001
format:
  max_diffs: 3
logging:
  format: json
  level: debug
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Compare.DifferenceThreshold)
	assert.Equal(t, 0.001, cfg.Compare.ToleranceHintThreshold)
	assert.Equal(t, 3, cfg.Format.MaxDiffs)
	assert.Equal(t, 10, cfg.Format.MaxDepth)
	assert.True(t, cfg.Format.ShowDiff)
	assert.Equal(t, LogJSON, cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"malformed", "compare: [", "failed to parse config"},
		{"negative threshold", "compare:\n  difference_threshold: -1\n", "difference_threshold"},
		{"negative max diffs", "format:\n  max_diffs: -2\n", "max_diffs"},
		{"unknown format", "logging:\n  format: xml\n", "unknown log format: xml"},
		{"unknown level", "logging:\n  level: loud\n", "unknown log level: loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FLUENT_DIFFERENCE_THRESHOLD", "0.5")
	t.Setenv("FLUENT_MATCH_STRUCT_TYPES", "true")
	t.Setenv("FLUENT_MAX_DIFFS", "4")
	t.Setenv("FLUENT_SHOW_DIFF", "false")
	t.Setenv("FLUENT_LOG_FORMAT", "CONSOLE")
	t.Setenv("FLUENT_LOG_LEVEL", "warn")
	t.Setenv("FLUENT_LOG_REDACT", "hunter22,swordfish")
	t.Setenv("FLUENT_LOG_ECHO", "1")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 0.5, cfg.Compare.DifferenceThreshold)
	assert.True(t, cfg.Compare.MatchStructTypes)
	assert.Equal(t, 4, cfg.Format.MaxDiffs)
	assert.False(t, cfg.Format.ShowDiff)
	assert.Equal(t, LogConsole, cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, []string{"hunter22", "swordfish"}, cfg.Logging.Redact)
	assert.True(t, cfg.Logging.Echo)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"FLUENT_TOLERANCE_HINT_THRESHOLD", "tiny"},
		{"FLUENT_MAX_DEPTH", "deep"},
		{"FLUENT_VERBOSE", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			cfg := Default()
			err := cfg.ApplyEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid "+tt.name)
		})
	}
}

func TestApplyEnv_EmptyIsIgnored(t *testing.T) {
	t.Setenv("FLUENT_MAX_DIFFS", "  ")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 10, cfg.Format.MaxDiffs)
}

func TestLoadEnvFile(t *testing.T) {
	path := writeFile(t, ".env", "FLUENT_TEST_DIFF_CONTEXT=3\n")
	t.Cleanup(func() { os.Unsetenv("FLUENT_TEST_DIFF_CONTEXT") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "3", os.Getenv("FLUENT_TEST_DIFF_CONTEXT"))
}

func TestLoadEnvFile_DoesNotOverride(t *testing.T) {
	t.Setenv("FLUENT_LOG_LEVEL", "error")
	path := writeFile(t, ".env", "FLUENT_LOG_LEVEL=debug\n")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "error", os.Getenv("FLUENT_LOG_LEVEL"))
}

func TestLoadEnvFile_FromVariableAndMissing(t *testing.T) {
	t.Setenv("FLUENT_ENV", filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, LoadEnvFile(""))
}

func TestLogger(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		l, err := Default().Logger()
		require.NoError(t, err)
		assert.IsType(t, logging.NullLogger{}, l)
	})

	t.Run("console", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Format = LogConsole
		l, err := cfg.Logger()
		require.NoError(t, err)
		assert.IsType(t, &logging.ConsoleLogger{}, l)
	})

	t.Run("json files", func(t *testing.T) {
		dir := t.TempDir()
		cfg := Default()
		cfg.Logging.Format = LogJSON
		cfg.Logging.Dir = dir
		l, err := cfg.Logger()
		require.NoError(t, err)
		l.LogCheck(logging.CheckRecord{Key: "not_equal", Passed: false})
		require.NoError(t, l.Close())

		data, err := os.ReadFile(filepath.Join(dir, "checks.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"not_equal"`)
	})

	t.Run("json echoed to console", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Format = LogJSON
		cfg.Logging.Dir = t.TempDir()
		cfg.Logging.Echo = true
		l, err := cfg.Logger()
		require.NoError(t, err)
		assert.IsType(t, &logging.MultiLogger{}, l)
		assert.NoError(t, l.Close())
	})

	t.Run("redacted", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Format = LogConsole
		cfg.Logging.Redact = []string{"hunter22"}
		l, err := cfg.Logger()
		require.NoError(t, err)
		assert.IsType(t, &logging.RedactingLogger{}, l)
	})

	t.Run("bad level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "loud"
		_, err := cfg.Logger()
		assert.Error(t, err)
	})
}

func TestCheckerOptions(t *testing.T) {
	cfg := Default()
	cfg.Compare.DifferenceThreshold = 1
	cfg.Compare.ToleranceHintThreshold = 0
	m := metrics.NewCounterMetrics()

	opts, err := cfg.CheckerOptions(m)
	require.NoError(t, err)

	c := check.Panicking(opts...)
	assert.Equal(t, 1.0, c.Comparer().Options().DifferenceThreshold)

	captured := c.Capture(func() { check.That(c, 1.5).IsEqualTo(1.0) })
	require.NotNil(t, captured.Failure)
	assert.Equal(t,
		"The checked value is different from the expected one, with a difference of 0.5.",
		captured.Failure.Lines()[0])
	assert.Equal(t, 1, m.CheckCount(string(message.KeyNotEqual), false, false))
}
