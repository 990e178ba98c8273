package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all process configuration. It is loaded once at startup and
// treated as read-only afterwards; handlers receive it by injection rather
// than reading viper ambiently.
type Config struct {
	ServerPort string

	BoardID     string
	APIKey      string
	APIToken    string // empty until the auth flow has been completed
	FeedSecret  string
	ProductName string
}

// Load reads config.toml from the working directory via viper and returns
// the decoded configuration.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		ServerPort:  viper.GetString("server.port"),
		BoardID:     viper.GetString("trello.board_id"),
		APIKey:      viper.GetString("trello.api_key"),
		APIToken:    viper.GetString("trello.api_token"),
		FeedSecret:  viper.GetString("feed.secret"),
		ProductName: "Trello -> ICS Shimmy",
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BoardID == "" {
		return fmt.Errorf("trello.board_id is required")
	}
	if c.FeedSecret == "" {
		return fmt.Errorf("feed.secret is required")
	}

	return nil
}
