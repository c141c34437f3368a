package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
// The random-trigger constants are deliberately configuration rather than
// literals: the probability model is a heuristic and its tuning should be
// adjustable without a rebuild.
type Config struct {
	DBPath   string `envconfig:"DB_PATH" default:"./data/compliments.db"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error

	// Tick loop.
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"30s"`
	DedupWindow  time.Duration `envconfig:"DEDUP_WINDOW" default:"60s"`

	// Surprise-notification tuning.
	RandomBaseChance float64       `envconfig:"RANDOM_BASE_CHANCE" default:"0.01"`
	RandomMaxChance  float64       `envconfig:"RANDOM_MAX_CHANCE" default:"0.05"`
	RandomSaturation time.Duration `envconfig:"RANDOM_SATURATION" default:"4h"`
	RandomFromHour   int           `envconfig:"RANDOM_FROM_HOUR" default:"8"`
	RandomToHour     int           `envconfig:"RANDOM_TO_HOUR" default:"22"`

	// Optional delivery channels. The log banner is always on; these are
	// added when configured.
	WebhookURL     string        `envconfig:"WEBHOOK_URL" default:""`
	WebhookTimeout time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"10s"`
	TelegramToken  string        `envconfig:"TELEGRAM_TOKEN" default:""`
	TelegramChatID int64         `envconfig:"TELEGRAM_CHAT_ID" default:"0"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
