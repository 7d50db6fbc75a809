package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATA_FILE", "TAGS_FILE", "IMAGE_DIR", "LOCK_TIMEOUT", "LOCK_RETRY", "PORT", "CORS_ORIGINS", "REAPPLY_WINDOW_DAYS", "STORE_TRANSACTIONAL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "my_cards.csv", cfg.DataFile)
	assert.Equal(t, "tags.json", cfg.TagsFile)
	assert.Equal(t, "card_images", cfg.ImageDir)
	assert.Equal(t, 10*time.Second, cfg.LockTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.LockRetry)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 60, cfg.ReapplyWindowDays)
	assert.False(t, cfg.Transactional)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_FILE", "/tmp/cards.csv")
	t.Setenv("LOCK_TIMEOUT", "2s")
	t.Setenv("REAPPLY_WINDOW_DAYS", "30")
	t.Setenv("STORE_TRANSACTIONAL", "true")

	cfg := Load()
	assert.Equal(t, "/tmp/cards.csv", cfg.DataFile)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
	assert.Equal(t, 30, cfg.ReapplyWindowDays)
	assert.True(t, cfg.Transactional)
}

func TestGetDurationEnv_Invalid(t *testing.T) {
	t.Setenv("LOCK_TIMEOUT", "soon")
	assert.Equal(t, 5*time.Second, GetDurationEnv("LOCK_TIMEOUT", 5*time.Second))

	t.Setenv("LOCK_TIMEOUT", "-1s")
	assert.Equal(t, 5*time.Second, GetDurationEnv("LOCK_TIMEOUT", 5*time.Second))
}
