package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Discord struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"discord"`
	DataSource struct {
		BaseURL           string  `yaml:"base_url"`
		APIKey            string  `yaml:"api_key"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"data_source"`
	Market struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"market"`
	Selector struct {
		Breadth int `yaml:"breadth"`
	} `yaml:"selector"`
	Smoothing struct {
		IntradayWindowMinutes int `yaml:"intraday_window_minutes"`
		HistoricBuckets       int `yaml:"historic_buckets"`
	} `yaml:"smoothing"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DISCORD_BOT_TOKEN"); v != "" {
		cfg.Discord.BotToken = v
	}
	if v := os.Getenv("UW_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("UW_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SELECTOR_BREADTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Selector.Breadth = n
		}
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.unusualwhales.com"
	}
	if cfg.DataSource.RequestsPerSecond == 0 {
		cfg.DataSource.RequestsPerSecond = 5
	}
	if cfg.DataSource.Burst == 0 {
		cfg.DataSource.Burst = 10
	}
	if cfg.Market.Timezone == "" {
		cfg.Market.Timezone = "America/New_York"
	}
	if cfg.Selector.Breadth == 0 {
		cfg.Selector.Breadth = 3
	}
	if cfg.Smoothing.IntradayWindowMinutes == 0 {
		cfg.Smoothing.IntradayWindowMinutes = 15
	}
	if cfg.Smoothing.HistoricBuckets == 0 {
		cfg.Smoothing.HistoricBuckets = 3
	}
	if cfg.Schedule.RefreshCron == "" {
		// Every 15 minutes during extended market hours, Mon-Fri.
		cfg.Schedule.RefreshCron = "0 */15 9-16 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/ivsentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Discord.BotToken == "" {
		return fmt.Errorf("discord.bot_token is required")
	}
	if c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required")
	}
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if c.Selector.Breadth < 1 {
		return fmt.Errorf("selector.breadth must be at least 1")
	}
	if _, err := time.LoadLocation(c.Market.Timezone); err != nil {
		return fmt.Errorf("market.timezone: %w", err)
	}
	return nil
}

// IntradayWindow returns the intraday smoothing window as a duration.
func (c *Config) IntradayWindow() time.Duration {
	return time.Duration(c.Smoothing.IntradayWindowMinutes) * time.Minute
}
