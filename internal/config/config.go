package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nightshift-cli/nightshift/internal/errors"
	"github.com/nightshift-cli/nightshift/internal/policy"
)

// Config holds all configuration settings
type Config struct {
	// WorkHours defines the busy interval whose commits get remapped
	WorkHours WorkHoursConfig `mapstructure:"work_hours" yaml:"work_hours"`

	// NightWindow is where remapped timestamps are placed
	NightWindow NightWindowConfig `mapstructure:"night_window" yaml:"night_window"`

	// MinSpacing is the smallest allowed gap between consecutive commits
	MinSpacing time.Duration `mapstructure:"min_spacing" yaml:"min_spacing"`

	// Lookback bounds how far back fix and check look by default
	Lookback time.Duration `mapstructure:"lookback" yaml:"lookback"`

	// Seed makes plans reproducible when non-zero
	Seed int64 `mapstructure:"seed" yaml:"seed"`

	// JournalPath is where applied fix sessions are recorded
	JournalPath string `mapstructure:"journal_path" yaml:"journal_path"`
}

type WorkHoursConfig struct {
	StartHour    int  `mapstructure:"start_hour" yaml:"start_hour"`
	EndHour      int  `mapstructure:"end_hour" yaml:"end_hour"`
	SkipWeekends bool `mapstructure:"skip_weekends" yaml:"skip_weekends"`
	WeekdayOnly  bool `mapstructure:"weekday_only" yaml:"weekday_only"`
}

type NightWindowConfig struct {
	StartHour int `mapstructure:"start_hour" yaml:"start_hour"`
	EndHour   int `mapstructure:"end_hour" yaml:"end_hour"`
}

// Default returns default configuration. The defaults mirror the classic
// rules: 9am-7pm Monday to Friday is work, replacement times land between
// 10pm the evening before and 3am.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		WorkHours: WorkHoursConfig{
			StartHour:    9,
			EndHour:      19,
			SkipWeekends: true,
		},
		NightWindow: NightWindowConfig{
			StartHour: 22,
			EndHour:   3,
		},
		MinSpacing:  10 * time.Minute,
		Lookback:    24 * time.Hour,
		JournalPath: filepath.Join(homeDir, ".nightshift", "journal.db"),
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("work_hours", cfg.WorkHours)
	v.SetDefault("night_window", cfg.NightWindow)
	v.SetDefault("min_spacing", cfg.MinSpacing)
	v.SetDefault("lookback", cfg.Lookback)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("journal_path", cfg.JournalPath)

	// Load from environment variables
	v.SetEnvPrefix("NIGHTSHIFT")
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".nightshift")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".nightshift"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects malformed policy configuration eagerly, before any
// commit is read.
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	if err := c.Window().Validate(); err != nil {
		return err
	}
	if c.MinSpacing <= 0 {
		return errors.ConfigErrorf("min_spacing must be positive, got %s", c.MinSpacing)
	}
	if c.MinSpacing >= c.Window().Duration() {
		return errors.ConfigErrorf("min_spacing %s does not fit inside the %s night window",
			c.MinSpacing, c.Window().Duration())
	}
	if c.Lookback < 0 {
		return errors.ConfigErrorf("lookback must not be negative, got %s", c.Lookback)
	}
	return nil
}

// Policy returns the work-hours policy value
func (c *Config) Policy() policy.WorkHours {
	return policy.WorkHours{
		StartHour:    c.WorkHours.StartHour,
		EndHour:      c.WorkHours.EndHour,
		SkipWeekends: c.WorkHours.SkipWeekends,
		WeekdayOnly:  c.WorkHours.WeekdayOnly,
	}
}

// Window returns the night window value
func (c *Config) Window() policy.NightWindow {
	return policy.NightWindow{
		StartHour: c.NightWindow.StartHour,
		EndHour:   c.NightWindow.EndHour,
	}
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".nightshift", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if start := os.Getenv("NIGHTSHIFT_WORK_START_HOUR"); start != "" {
		if h, err := strconv.Atoi(start); err == nil {
			cfg.WorkHours.StartHour = h
		}
	}
	if end := os.Getenv("NIGHTSHIFT_WORK_END_HOUR"); end != "" {
		if h, err := strconv.Atoi(end); err == nil {
			cfg.WorkHours.EndHour = h
		}
	}
	if skip := os.Getenv("NIGHTSHIFT_SKIP_WEEKENDS"); skip != "" {
		cfg.WorkHours.SkipWeekends = skip == "true"
	}
	if start := os.Getenv("NIGHTSHIFT_NIGHT_START_HOUR"); start != "" {
		if h, err := strconv.Atoi(start); err == nil {
			cfg.NightWindow.StartHour = h
		}
	}
	if end := os.Getenv("NIGHTSHIFT_NIGHT_END_HOUR"); end != "" {
		if h, err := strconv.Atoi(end); err == nil {
			cfg.NightWindow.EndHour = h
		}
	}
	if spacing := os.Getenv("NIGHTSHIFT_MIN_SPACING_MINUTES"); spacing != "" {
		if m, err := strconv.Atoi(spacing); err == nil {
			cfg.MinSpacing = time.Duration(m) * time.Minute
		}
	}
	if lookback := os.Getenv("NIGHTSHIFT_LOOKBACK_HOURS"); lookback != "" {
		if h, err := strconv.Atoi(lookback); err == nil {
			cfg.Lookback = time.Duration(h) * time.Hour
		}
	}
	if seed := os.Getenv("NIGHTSHIFT_SEED"); seed != "" {
		if s, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Seed = s
		}
	}
	if path := os.Getenv("NIGHTSHIFT_JOURNAL_PATH"); path != "" {
		cfg.JournalPath = expandPath(path)
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
