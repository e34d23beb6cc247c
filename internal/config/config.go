// Package config loads client configuration from a .env file and the
// environment, mirroring the key names the assistant side uses.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the client needs to run.
type Config struct {
	// BotToken authenticates against the chat transport.
	BotToken string
	// ChannelID is the channel treated as the message bus.
	ChannelID string
	// AssistantUserID optionally restricts inbound delivery to that
	// author; empty accepts any bot-authored message.
	AssistantUserID string
	// DatabasePath is the local cache file.
	DatabasePath string
	// LogLevel is one of debug/info/warn/error.
	LogLevel string
	// SyncSchedule is a cron expression for the background full-sync
	// request; empty disables it.
	SyncSchedule string
	// PollInterval is the fixed delay between poll ticks.
	PollInterval time.Duration
	// MessageRetention bounds the persisted conversation log.
	MessageRetention int
}

// Load reads configuration from envPath (or ./.env when empty) and the
// process environment. Environment variables win over the file.
func Load(envPath string) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}
	_ = godotenv.Load(envPath)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		BotToken:         v.GetString("DISCORD_BOT_TOKEN"),
		ChannelID:        v.GetString("DISCORD_CHANNEL_ID"),
		AssistantUserID:  v.GetString("ASSISTANT_USER_ID"),
		DatabasePath:     v.GetString("DATABASE_PATH"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		SyncSchedule:     v.GetString("SYNC_SCHEDULE"),
		PollInterval:     time.Duration(v.GetInt("POLL_INTERVAL_SEC")) * time.Second,
		MessageRetention: v.GetInt("MESSAGE_RETENTION"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DISCORD_BOT_TOKEN", "")
	v.SetDefault("DISCORD_CHANNEL_ID", "")
	v.SetDefault("ASSISTANT_USER_ID", "")
	v.SetDefault("DATABASE_PATH", "angmini-client.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SYNC_SCHEDULE", "@every 10m")
	v.SetDefault("POLL_INTERVAL_SEC", 5)
	v.SetDefault("MESSAGE_RETENTION", 200)
}

func (c *Config) validate() error {
	var errs []error
	if c.BotToken == "" {
		errs = append(errs, errors.New("DISCORD_BOT_TOKEN is not set"))
	}
	if c.ChannelID == "" {
		errs = append(errs, errors.New("DISCORD_CHANNEL_ID is not set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
