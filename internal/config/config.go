package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DEFAULT_PORT       = "3000"
	DEFAULT_DATA_FILE  = "data.json"
	DEFAULT_PUBLIC_DIR = "public"
)

// Config holds all configuration for the application. Values are read by
// viper from an optional config file or from environment variables.
type Config struct {
	// NewsAPIKey authenticates against the upstream provider. An empty key is
	// allowed: upstream calls will fail and the feed degrades to placeholder
	// content instead of refusing to start.
	NewsAPIKey string `mapstructure:"NEWS_API_KEY"`
	// ProxyURL routes upstream calls through an HTTP(S) proxy when set.
	ProxyURL  string `mapstructure:"HTTPS_PROXY"`
	Port      string `mapstructure:"PORT"`
	DataFile  string `mapstructure:"DATA_FILE"`
	PublicDir string `mapstructure:"PUBLIC_DIR"`
}

// LoadConfig reads configuration from a config file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("NEWS_API_KEY", "")
	viper.SetDefault("HTTPS_PROXY", "")
	viper.SetDefault("HTTP_PROXY", "")
	viper.SetDefault("PORT", DEFAULT_PORT)
	viper.SetDefault("DATA_FILE", DEFAULT_DATA_FILE)
	viper.SetDefault("PUBLIC_DIR", DEFAULT_PUBLIC_DIR)

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; environment variables and defaults apply.
	}

	if err = viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.ProxyURL == "" {
		config.ProxyURL = viper.GetString("HTTP_PROXY")
	}

	return config, nil
}
