// Package config loads application settings from a YAML file and the
// PEREDAI_* environment, with sensible defaults for local use.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/yshymko/peredai/internal/messaging"
)

// Config is the full application configuration.
type Config struct {
	DataDir         string `mapstructure:"data_dir"`
	OutputDir       string `mapstructure:"output_dir"`
	DBPath          string `mapstructure:"db_path"`
	SentencesPerDay int    `mapstructure:"sentences_per_day"`
	// Schedule is a cron expression for the serve daemon.
	Schedule string `mapstructure:"schedule"`

	Email messaging.EmailConfig `mapstructure:"email"`
	SMS   messaging.SMSConfig   `mapstructure:"sms"`
}

// Load reads configuration from cfgFile when given, otherwise from a
// peredai.yaml found in the working directory. A missing config file is
// fine; defaults and environment variables still apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", "data/texts")
	v.SetDefault("output_dir", "data/translated")
	v.SetDefault("db_path", "peredai.db")
	v.SetDefault("sentences_per_day", 3)
	v.SetDefault("schedule", "0 8 * * *")
	v.SetDefault("email.host", "smtp.example.com")
	v.SetDefault("email.port", 587)
	v.SetDefault("email.from", "translation_service@example.com")
	v.SetDefault("email.reply_to", "translations@example.com")

	// Secrets usually arrive via PEREDAI_* environment variables rather
	// than the config file. AutomaticEnv only resolves keys viper already
	// knows about, so every key needs a default, even an empty one.
	v.SetDefault("email.username", "")
	v.SetDefault("email.password", "")
	v.SetDefault("sms.gateway_url", "")
	v.SetDefault("sms.auth_token", "")
	v.SetDefault("sms.from_number", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("peredai")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.peredai")
	}

	v.SetEnvPrefix("PEREDAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
