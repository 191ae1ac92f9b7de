package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/nightshift-cli/nightshift/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 9, cfg.WorkHours.StartHour)
	assert.Equal(t, 19, cfg.WorkHours.EndHour)
	assert.True(t, cfg.WorkHours.SkipWeekends)
	assert.Equal(t, 22, cfg.NightWindow.StartHour)
	assert.Equal(t, 3, cfg.NightWindow.EndHour)
	assert.Equal(t, 10*time.Minute, cfg.MinSpacing)
	assert.Equal(t, 24*time.Hour, cfg.Lookback)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"work end before start", func(c *Config) { c.WorkHours.StartHour = 19; c.WorkHours.EndHour = 9 }},
		{"night window not spanning midnight", func(c *Config) { c.NightWindow.StartHour = 8 }},
		{"night window afternoon end", func(c *Config) { c.NightWindow.EndHour = 13 }},
		{"zero spacing", func(c *Config) { c.MinSpacing = 0 }},
		{"negative spacing", func(c *Config) { c.MinSpacing = -time.Minute }},
		{"spacing wider than window", func(c *Config) { c.MinSpacing = 6 * time.Hour }},
		{"negative lookback", func(c *Config) { c.Lookback = -time.Hour }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeConfig, apperrors.GetType(err))
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
work_hours:
  start_hour: 8
  end_hour: 18
  skip_weekends: false
night_window:
  start_hour: 20
  end_hour: 5
min_spacing: 15m
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8, cfg.WorkHours.StartHour)
	assert.Equal(t, 18, cfg.WorkHours.EndHour)
	assert.False(t, cfg.WorkHours.SkipWeekends)
	assert.Equal(t, 20, cfg.NightWindow.StartHour)
	assert.Equal(t, 5, cfg.NightWindow.EndHour)
	assert.Equal(t, 15*time.Minute, cfg.MinSpacing)
	// Unspecified keys keep their defaults
	assert.Equal(t, 24*time.Hour, cfg.Lookback)
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
night_window:
  start_hour: 2
  end_hour: 5
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("{}\n"), 0600))

	t.Setenv("NIGHTSHIFT_MIN_SPACING_MINUTES", "20")
	t.Setenv("NIGHTSHIFT_WORK_START_HOUR", "10")
	t.Setenv("NIGHTSHIFT_SKIP_WEEKENDS", "false")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 20*time.Minute, cfg.MinSpacing)
	assert.Equal(t, 10, cfg.WorkHours.StartHour)
	assert.False(t, cfg.WorkHours.SkipWeekends)
}

func TestWriteFile_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	assert.NoError(t, Default().WriteFile(path))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, Default().WorkHours, cfg.WorkHours)
	assert.Equal(t, Default().NightWindow, cfg.NightWindow)
}
