package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level gitsight configuration. It is constructed once
// per run and handed down explicitly; nothing reads it through globals.
type Config struct {
	GitHubToken         string `mapstructure:"github_token"`
	OutputDir           string `mapstructure:"output_dir"`
	CloneTimeoutSeconds int    `mapstructure:"clone_timeout_seconds"`
	Concurrency         int    `mapstructure:"concurrency"`
	Ollama              Ollama `mapstructure:"ollama"`
	Output              Output `mapstructure:"output"`
}

// Ollama configures the optional text-insight provider. Model empty means
// the provider is disabled.
type Ollama struct {
	Host  string `mapstructure:"host"`
	Model string `mapstructure:"model"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// CloneTimeout returns the clone bound as a duration.
func (c *Config) CloneTimeout() time.Duration {
	return time.Duration(c.CloneTimeoutSeconds) * time.Second
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A missing config file
// is not an error. The GITHUB_TOKEN environment variable fills the token
// when the file does not set one.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("github_token", "")
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("clone_timeout_seconds", DefaultCloneTimeoutSeconds)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("ollama.host", DefaultOllamaHost)
	v.SetDefault("ollama.model", "")
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	cfg.OutputDir = expandPath(cfg.OutputDir)

	return &cfg, nil
}

// DBPath returns the full path to the run-history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
