// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DBPath             string `env:"ACTNXT_DB_PATH" env-default:"actnxt.db"`
	LogFile            string `env:"ACTNXT_LOG_FILE" env-default:"actnxt.log"`
	FeedBaseURL        string `env:"ACTNXT_FEED_URL" env-default:"https://api.actnxt.example.com"`
	SyncOnStart        bool   `env:"ACTNXT_SYNC_ON_START" env-default:"true"`
	FollowUpGraceMins  int    `env:"ACTNXT_FOLLOWUP_GRACE_MINUTES" env-default:"60"`
	NotifyBuffer       int    `env:"ACTNXT_NOTIFY_BUFFER" env-default:"64"`
	LogMaxSizeMegabyte int    `env:"ACTNXT_LOG_MAX_SIZE_MB" env-default:"5"`
	LogMaxBackups      int    `env:"ACTNXT_LOG_MAX_BACKUPS" env-default:"3"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env config: %w", err)
	}
	return cfg, nil
}
