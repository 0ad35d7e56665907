package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("BRIDGE_URL", "https://automation.example.com/webhook/bridge")
	t.Setenv("STORAGE_URL", "https://project.storage.example.com")
	t.Setenv("STORAGE_BUCKET", "posts")
	t.Setenv("TIMEZONE", "UTC")

	cfg := LoadConfig()

	assert.Equal(t, "https://automation.example.com/webhook/bridge", cfg.BridgeURL)
	assert.Equal(t, "https://project.storage.example.com", cfg.Storage.BaseURL)
	assert.Equal(t, "posts", cfg.Storage.Bucket)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BUCKET", "")
	t.Setenv("SUMMARY_REFRESH", "")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "midias", cfg.Storage.Bucket)
	assert.Equal(t, "@every 10m", cfg.SummaryRefresh)
}

func TestLocation_UnknownZone(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus_Mons"}
	assert.Equal(t, time.UTC, cfg.Location())
}
