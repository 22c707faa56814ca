package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Inputs  []InputSpec   `yaml:"inputs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/report.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	OutDir  string `yaml:"out_dir" envconfig:"OUT_DIR" default:"out"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// ReportConfig contains the knobs of the reporting pipeline
type ReportConfig struct {
	// Window is the recency window: how many of the most recent non-missing
	// yearly observations are averaged per (country, indicator) group.
	Window int `yaml:"window" envconfig:"WINDOW" default:"5"`
	// MinAvgValue drops near-zero averages from the filtered plot variant.
	MinAvgValue float64 `yaml:"min_avg_value" envconfig:"MIN_AVG_VALUE" default:"0.1"`
	// LabelTopK is how many of the most populous countries get text labels
	// per plot or animation frame.
	LabelTopK int `yaml:"label_top_k" envconfig:"LABEL_TOP_K" default:"30"`
	// PopulationIndicator is the indicator code whose values drive point
	// sizing and label ranking.
	PopulationIndicator string `yaml:"population_indicator" envconfig:"POPULATION_INDICATOR" default:"SP.POP.TOTL"`

	// Animation output parameters.
	AnimationFrames int `yaml:"animation_frames" envconfig:"ANIMATION_FRAMES" default:"200"`
	AnimationFPS    int `yaml:"animation_fps" envconfig:"ANIMATION_FPS" default:"10"`
	AnimationWidth  int `yaml:"animation_width" envconfig:"ANIMATION_WIDTH" default:"600"`
	AnimationHeight int `yaml:"animation_height" envconfig:"ANIMATION_HEIGHT" default:"400"`
}

// InputSpec names one indicator workbook and the data-source label its
// observations are tagged with.
type InputSpec struct {
	File   string `yaml:"file"`
	Source string `yaml:"source"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("WBT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if len(cfg.Inputs) == 0 {
		cfg.Inputs = DefaultInputs()
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config into env config, with env taking precedence
// only where it was explicitly set away from the defaults.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := fileConfig

	if envConfig.Logging.Level != "info" {
		merged.Logging.Level = envConfig.Logging.Level
	}
	if envConfig.Logging.Output != "console" {
		merged.Logging.Output = envConfig.Logging.Output
	}
	if envConfig.Paths.DataDir != DefaultDataDir {
		merged.Paths.DataDir = envConfig.Paths.DataDir
	}
	if envConfig.Paths.OutDir != DefaultOutDir {
		merged.Paths.OutDir = envConfig.Paths.OutDir
	}
	if envConfig.Report.Window != 5 {
		merged.Report.Window = envConfig.Report.Window
	}
	if envConfig.Report.MinAvgValue != 0.1 {
		merged.Report.MinAvgValue = envConfig.Report.MinAvgValue
	}
	if envConfig.Report.LabelTopK != 30 {
		merged.Report.LabelTopK = envConfig.Report.LabelTopK
	}

	// Fill any zero values left by a sparse YAML file from the env defaults.
	if merged.Logging.Level == "" {
		merged.Logging.Level = envConfig.Logging.Level
	}
	if merged.Logging.Output == "" {
		merged.Logging.Output = envConfig.Logging.Output
	}
	if merged.Logging.FilePath == "" {
		merged.Logging.FilePath = envConfig.Logging.FilePath
	}
	if merged.Paths.DataDir == "" {
		merged.Paths.DataDir = envConfig.Paths.DataDir
	}
	if merged.Paths.OutDir == "" {
		merged.Paths.OutDir = envConfig.Paths.OutDir
	}
	if merged.Paths.LogsDir == "" {
		merged.Paths.LogsDir = envConfig.Paths.LogsDir
	}
	if merged.Report.Window == 0 {
		merged.Report.Window = envConfig.Report.Window
	}
	if merged.Report.MinAvgValue == 0 {
		merged.Report.MinAvgValue = envConfig.Report.MinAvgValue
	}
	if merged.Report.LabelTopK == 0 {
		merged.Report.LabelTopK = envConfig.Report.LabelTopK
	}
	if merged.Report.PopulationIndicator == "" {
		merged.Report.PopulationIndicator = envConfig.Report.PopulationIndicator
	}
	if merged.Report.AnimationFrames == 0 {
		merged.Report.AnimationFrames = envConfig.Report.AnimationFrames
	}
	if merged.Report.AnimationFPS == 0 {
		merged.Report.AnimationFPS = envConfig.Report.AnimationFPS
	}
	if merged.Report.AnimationWidth == 0 {
		merged.Report.AnimationWidth = envConfig.Report.AnimationWidth
	}
	if merged.Report.AnimationHeight == 0 {
		merged.Report.AnimationHeight = envConfig.Report.AnimationHeight
	}
	if len(merged.Inputs) == 0 {
		merged.Inputs = envConfig.Inputs
	}

	return merged
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	if c.Report.Window < 1 {
		return fmt.Errorf("report window must be at least 1, got %d", c.Report.Window)
	}
	if c.Report.MinAvgValue < 0 {
		return fmt.Errorf("min avg value must not be negative, got %f", c.Report.MinAvgValue)
	}
	if c.Report.LabelTopK < 0 {
		return fmt.Errorf("label top-k must not be negative, got %d", c.Report.LabelTopK)
	}
	if c.Report.AnimationFrames < 1 {
		return fmt.Errorf("animation frames must be at least 1, got %d", c.Report.AnimationFrames)
	}
	if c.Report.AnimationFPS < 1 {
		return fmt.Errorf("animation fps must be at least 1, got %d", c.Report.AnimationFPS)
	}
	if c.Report.AnimationWidth < 1 || c.Report.AnimationHeight < 1 {
		return fmt.Errorf("animation canvas must be positive, got %dx%d",
			c.Report.AnimationWidth, c.Report.AnimationHeight)
	}
	switch c.Logging.Output {
	case "console", "file", "both", "":
	default:
		return fmt.Errorf("unknown logging output %q", c.Logging.Output)
	}
	for i, in := range c.Inputs {
		if in.File == "" {
			return fmt.Errorf("input %d has no file", i)
		}
		if in.Source == "" {
			return fmt.Errorf("input %d (%s) has no source label", i, in.File)
		}
	}
	return nil
}

// getConfigFilePath returns the path of the optional YAML config file,
// overridable for tests via WBT_CONFIG_FILE.
func getConfigFilePath() string {
	if path := os.Getenv("WBT_CONFIG_FILE"); path != "" {
		return path
	}
	return DefaultConfigFile
}

// InputPath resolves an input spec file name against the data directory.
func (c *Config) InputPath(spec InputSpec) string {
	if filepath.IsAbs(spec.File) {
		return spec.File
	}
	return filepath.Join(c.Paths.DataDir, spec.File)
}

// OutPath resolves an output artifact name against the output directory.
func (c *Config) OutPath(name string) string {
	return filepath.Join(c.Paths.OutDir, name)
}
