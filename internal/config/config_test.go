package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Normalize(t *testing.T) {
	cfg := &Config{
		Database: Database{Driver: "postgres", User: "u", Password: "p", URL: "db:5432/pinterest"},
		Pinterest: Pinterest{
			BaseURL: "https://api.pinterest.com/",
			Version: "v5",
			Metrics: []string{" impression", "", "SAVE "},
		},
	}

	cfg.Normalize()

	assert.Equal(t, "https://api.pinterest.com/v5", cfg.Pinterest.URL)
	assert.Equal(t, []string{"IMPRESSION", "SAVE"}, cfg.Pinterest.Metrics)
	assert.Equal(t, 15*time.Second, cfg.Pinterest.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Pinterest.RefreshBuffer)
	assert.Equal(t, 30*time.Second, cfg.Pinterest.RefreshLockTTL)
	assert.Equal(t, "using substitute data", cfg.Pinterest.FallbackMessage)
	assert.Equal(t, "postgres://u:p@db:5432/pinterest", cfg.Database.DSN)
}

func TestConfig_NormalizeKeepsExplicitValues(t *testing.T) {
	cfg := &Config{Pinterest: Pinterest{
		Timeout:         5 * time.Second,
		RefreshBuffer:   time.Minute,
		FallbackMessage: "dados substitutos",
	}}

	cfg.Normalize()

	assert.Equal(t, 5*time.Second, cfg.Pinterest.Timeout)
	assert.Equal(t, time.Minute, cfg.Pinterest.RefreshBuffer)
	assert.Equal(t, "dados substitutos", cfg.Pinterest.FallbackMessage)
}
