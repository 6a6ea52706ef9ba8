package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv keeps the host environment out of Load
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SUPERJOB_TOKEN", "LOG_LEVEL", "LOG_FILE", "HTTP_PROXY_URL", "HH_AREA", "SUPERJOB_TOWN", "LANGSALARY_LANGUAGES"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLanguages, cfg.Languages)
	assert.Equal(t, "Программист", cfg.SearchPrefix)
	assert.Equal(t, 1, cfg.HeadHunter.Area)
	assert.Equal(t, 3, cfg.HeadHunter.Period)
	assert.Equal(t, "Москва", cfg.SuperJob.Town)
	assert.Equal(t, 100, cfg.SuperJob.Count)
	assert.Equal(t, "SuperJob Moscow", cfg.SuperJob.Title)
	assert.Equal(t, "HeadHunter Moscow", cfg.HeadHunter.Title)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "langsalary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
languages: [Go, Rust]
timeout: 5s
headhunter:
  enabled: true
  area: 2
  period: 7
superjob:
  enabled: false
  town: Санкт-Петербург
`), 0644))

	t.Setenv("SUPERJOB_TOKEN", "v3.r.secret")
	t.Setenv("HH_AREA", "113")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Rust"}, cfg.Languages)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 113, cfg.HeadHunter.Area)
	assert.Equal(t, 7, cfg.HeadHunter.Period)
	assert.False(t, cfg.SuperJob.Enabled)
	assert.Equal(t, "Санкт-Петербург", cfg.SuperJob.Town)
	assert.Equal(t, "v3.r.secret", cfg.SuperJob.Token)
	// untouched keys keep their defaults
	assert.Equal(t, 100, cfg.SuperJob.Count)
}

func TestLoad_LanguagesFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LANGSALARY_LANGUAGES", "Go, Kotlin")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kotlin"}, cfg.Languages)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("SUPERJOB_TOKEN"))
	require.NoError(t, os.WriteFile(".env", []byte("SUPERJOB_TOKEN=from-dotenv\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SUPERJOB_TOKEN") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.SuperJob.Token)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) { c.SuperJob.Token = "t" },
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) {},
			wantErr: "SUPERJOB_TOKEN",
		},
		{
			name: "token not needed without superjob",
			mutate: func(c *Config) {
				c.SuperJob.Enabled = false
			},
		},
		{
			name: "no languages",
			mutate: func(c *Config) {
				c.SuperJob.Token = "t"
				c.Languages = nil
			},
			wantErr: "language",
		},
		{
			name: "page size too large",
			mutate: func(c *Config) {
				c.SuperJob.Token = "t"
				c.SuperJob.Count = 500
			},
			wantErr: "superjob.count",
		},
		{
			name: "max pages derived from count",
			mutate: func(c *Config) {
				c.SuperJob.Token = "t"
				c.SuperJob.Count = 20
				c.SuperJob.MaxPages = 0
			},
		},
		{
			name: "negative max pages",
			mutate: func(c *Config) {
				c.SuperJob.Token = "t"
				c.SuperJob.MaxPages = -1
			},
			wantErr: "superjob.max_pages",
		},
		{
			name: "no sources",
			mutate: func(c *Config) {
				c.SuperJob.Enabled = false
				c.HeadHunter.Enabled = false
			},
			wantErr: "no source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
