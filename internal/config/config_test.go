package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("POSTS_PER_PAGE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 3, cfg.PostsPerPage)
	assert.Equal(t, 4, cfg.SimilarPostsLimit)
	assert.True(t, cfg.CSRFEnabled)
	assert.Equal(t, "admin@localhost.com", cfg.Mail.From)
	assert.Equal(t, "console", cfg.Mail.Backend)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
port: "9000"
posts_per_page: 5
site_base_url: https://blog.example.com/
mail:
  backend: smtp
  host: smtp.example.com
  port: 2525
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("POSTS_PER_PAGE", "7")
	t.Setenv("MAIL_BACKEND", "")
	t.Setenv("MAIL_PORT", "")
	t.Setenv("SITE_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 7, cfg.PostsPerPage)
	assert.Equal(t, "https://blog.example.com", cfg.SiteBaseURL)
	assert.Equal(t, "smtp", cfg.Mail.Backend)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 2525, cfg.Mail.Port)
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("POSTS_PER_PAGE", "three")

	_, err := Load()
	assert.Error(t, err)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Defaults()
	cfg.TimeZone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.TimeZone = ""
	assert.Equal(t, time.UTC, cfg.Location())
}
