package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointAwayFromConfigFile makes sure a developer's local config.yaml cannot
// leak into the test run.
func pointAwayFromConfigFile(t *testing.T) {
	t.Helper()
	t.Setenv("WBT_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	pointAwayFromConfigFile(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, DefaultDataDir, cfg.Paths.DataDir)
	assert.Equal(t, DefaultOutDir, cfg.Paths.OutDir)

	assert.Equal(t, 5, cfg.Report.Window)
	assert.Equal(t, 0.1, cfg.Report.MinAvgValue)
	assert.Equal(t, 30, cfg.Report.LabelTopK)
	assert.Equal(t, "SP.POP.TOTL", cfg.Report.PopulationIndicator)
	assert.Equal(t, 200, cfg.Report.AnimationFrames)
	assert.Equal(t, 10, cfg.Report.AnimationFPS)
	assert.Equal(t, 600, cfg.Report.AnimationWidth)
	assert.Equal(t, 400, cfg.Report.AnimationHeight)

	require.Len(t, cfg.Inputs, 4)
	assert.Equal(t, DefaultInputs(), cfg.Inputs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	pointAwayFromConfigFile(t)
	t.Setenv("WBT_REPORT_WINDOW", "3")
	t.Setenv("WBT_PATHS_DATA_DIR", "/tmp/indicators")
	t.Setenv("WBT_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Report.Window)
	assert.Equal(t, "/tmp/indicators", cfg.Paths.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yaml := `
report:
  window: 7
  min_avg_value: 0.5
paths:
  data_dir: custom-data
inputs:
  - file: one.xlsx
    source: IND.ONE
  - file: two.xlsx
    source: IND.TWO
`
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0644))
	t.Setenv("WBT_CONFIG_FILE", configPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Report.Window)
	assert.Equal(t, 0.5, cfg.Report.MinAvgValue)
	assert.Equal(t, "custom-data", cfg.Paths.DataDir)
	require.Len(t, cfg.Inputs, 2)
	assert.Equal(t, "IND.ONE", cfg.Inputs[0].Source)

	// Unset keys keep their defaults.
	assert.Equal(t, 30, cfg.Report.LabelTopK)
	assert.Equal(t, 200, cfg.Report.AnimationFrames)
	assert.Equal(t, "SP.POP.TOTL", cfg.Report.PopulationIndicator)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("report:\n  window: 7\n"), 0644))
	t.Setenv("WBT_CONFIG_FILE", configPath)
	t.Setenv("WBT_REPORT_WINDOW", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Report.Window)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		substr string
	}{
		{"negative window", "WBT_REPORT_WINDOW", "-1", "window"},
		{"negative threshold", "WBT_REPORT_MIN_AVG_VALUE", "-0.5", "min avg value"},
		{"negative frames", "WBT_REPORT_ANIMATION_FRAMES", "-3", "frames"},
		{"bad logging output", "WBT_LOGGING_OUTPUT", "syslog", "logging output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pointAwayFromConfigFile(t)
			t.Setenv(tt.envKey, tt.envVal)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestConfig_PathHelpers(t *testing.T) {
	cfg := &Config{
		Paths: PathsConfig{DataDir: "data", OutDir: "out"},
	}

	assert.Equal(t, filepath.Join("data", "pop.xlsx"), cfg.InputPath(InputSpec{File: "pop.xlsx"}))
	assert.Equal(t, "/abs/pop.xlsx", cfg.InputPath(InputSpec{File: "/abs/pop.xlsx"}))
	assert.Equal(t, filepath.Join("out", SummaryTableFile), cfg.OutPath(SummaryTableFile))
}

func TestLoad_InputSpecValidation(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("inputs:\n  - file: one.xlsx\n"), 0644))
	t.Setenv("WBT_CONFIG_FILE", configPath)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source label")
}
