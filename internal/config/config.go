// Package config loads langsalary configuration from a YAML file, .env and
// the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// DefaultConfigFile is read when no path is given and the file exists
const DefaultConfigFile = "config.yaml"

// DefaultLanguages is the language list used when none is configured
var DefaultLanguages = []string{
	"Python",
	"JavaScript",
	"Java",
	"Ruby",
	"PHP",
	"C++",
	"C#",
	"C",
	"Go",
}

// Config holds all application configuration
type Config struct {
	Languages    []string      `yaml:"languages"`
	SearchPrefix string        `yaml:"search_prefix"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`
	Timeout      time.Duration `yaml:"timeout"`
	Proxy        string        `yaml:"proxy"`

	HeadHunter HeadHunterConfig `yaml:"headhunter"`
	SuperJob   SuperJobConfig   `yaml:"superjob"`
}

// HeadHunterConfig configures the hh.ru source
type HeadHunterConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	Area      int    `yaml:"area"`
	Period    int    `yaml:"period"`
	UserAgent string `yaml:"user_agent"`
	Title     string `yaml:"title"`
}

// SuperJobConfig configures the superjob.ru source
type SuperJobConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BaseURL  string `yaml:"base_url"`
	Token    string `yaml:"token"` // Prefer SUPERJOB_TOKEN env var
	Town     string `yaml:"town"`
	Period   int    `yaml:"period"`
	Count    int    `yaml:"count"`
	MaxPages int    `yaml:"max_pages"`
	Title    string `yaml:"title"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Languages:    append([]string(nil), DefaultLanguages...),
		SearchPrefix: "Программист",
		LogLevel:     "info",
		Timeout:      30 * time.Second,
		HeadHunter: HeadHunterConfig{
			Enabled: true,
			BaseURL: "https://api.hh.ru",
			Area:    1,
			Period:  3,
			Title:   "HeadHunter Moscow",
		},
		SuperJob: SuperJobConfig{
			Enabled: true,
			BaseURL: "https://api.superjob.ru",
			Town:    "Москва",
			Period:  0,
			Count:   100,
			Title:   "SuperJob Moscow",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// config.yaml when path is empty and the file exists), .env and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.SuperJob.Token = getEnv("SUPERJOB_TOKEN", c.SuperJob.Token)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.Proxy = getEnv("HTTP_PROXY_URL", c.Proxy)
	c.HeadHunter.Area = getEnvInt("HH_AREA", c.HeadHunter.Area)
	c.SuperJob.Town = getEnv("SUPERJOB_TOWN", c.SuperJob.Town)

	if langs := utils.SplitList(os.Getenv("LANGSALARY_LANGUAGES")); len(langs) > 0 {
		c.Languages = langs
	}
}

// Validate reports configuration the providers would reject
func (c *Config) Validate() error {
	var errs []error

	if len(c.Languages) == 0 {
		errs = append(errs, errors.New("at least one language is required"))
	}
	if !c.HeadHunter.Enabled && !c.SuperJob.Enabled {
		errs = append(errs, errors.New("no source enabled"))
	}
	if c.HeadHunter.Enabled && c.HeadHunter.Period < 0 {
		errs = append(errs, errors.New("headhunter.period must not be negative"))
	}
	if c.SuperJob.Enabled {
		if c.SuperJob.Token == "" {
			errs = append(errs, errors.New("SUPERJOB_TOKEN is required when superjob is enabled"))
		}
		if c.SuperJob.Count < 1 || c.SuperJob.Count > 100 {
			errs = append(errs, fmt.Errorf("superjob.count must be within 1..100, got %d", c.SuperJob.Count))
		}
		if c.SuperJob.Period < 0 {
			errs = append(errs, errors.New("superjob.period must not be negative"))
		}
		if c.SuperJob.MaxPages < 0 {
			errs = append(errs, errors.New("superjob.max_pages must not be negative"))
		}
	}

	return errors.Join(errs...)
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
