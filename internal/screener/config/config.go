package config

import (
	"golang-swing-screener/pkg/config"
)

// Sheet holds the configuration for the tabular data source.
type Sheet struct {
	Source              string `mapstructure:"source"`
	RequestTimeout      string `mapstructure:"request_timeout"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Scheduler holds the configuration for the periodic re-run loop.
type Scheduler struct {
	Enabled        bool   `mapstructure:"enabled"`
	CronExpression string `mapstructure:"cron_expression"`
	RunOnStart     bool   `mapstructure:"run_on_start"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Alerts holds configuration for the Early Expansion alert side-channel.
type Alerts struct {
	Enabled       bool   `mapstructure:"enabled"`
	CacheDuration string `mapstructure:"cache_duration"`
}

// Policy selects the screening rule-set version.
type Policy struct {
	Version string `mapstructure:"version"`
}

// Config holds the full configuration for the screener service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Sheet     Sheet           `mapstructure:"sheet"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
	Telegram  Telegram        `mapstructure:"telegram"`
	Alerts    Alerts          `mapstructure:"alerts"`
	Policy    Policy          `mapstructure:"policy"`
}

// Load loads the screener configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
