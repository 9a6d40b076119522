package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 1*time.Hour, cfg.ScanInterval)
	assert.Equal(t, 24*time.Hour, cfg.ScanLookahead)
	assert.Equal(t, 24*time.Hour, cfg.BriefingFreshness)
	assert.Equal(t, 3, cfg.BriefingWorkers)
	assert.Equal(t, 5*time.Second, cfg.CalendarTimeout)
	assert.Equal(t, 8*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCAN_INTERVAL", "15m")
	t.Setenv("BRIEFING_WORKERS", "8")
	t.Setenv("PORT", "9000")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.ScanInterval)
	assert.Equal(t, 8, cfg.BriefingWorkers)
	assert.Equal(t, "9000", cfg.Port)
}

func TestGetDurationIgnoresGarbage(t *testing.T) {
	t.Setenv("SCAN_INTERVAL", "soon")
	cfg := Load()
	assert.Equal(t, 1*time.Hour, cfg.ScanInterval)
}

func TestGetIntRejectsNonPositive(t *testing.T) {
	t.Setenv("BRIEFING_WORKERS", "0")
	cfg := Load()
	assert.Equal(t, 3, cfg.BriefingWorkers)

	t.Setenv("BRIEFING_WORKERS", "many")
	cfg = Load()
	assert.Equal(t, 3, cfg.BriefingWorkers)
}
