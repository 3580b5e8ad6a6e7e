// Package config resolves command settings from flags, environment
// variables and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/naka-gawa/github-activity/internal/domain"
)

const (
	// EnvPrefix prefixes every environment override, e.g. GITHUB_ACTIVITY_LIMIT.
	EnvPrefix = "GITHUB_ACTIVITY"
	// TokenEnv holds the token used with --auth.
	TokenEnv = "GITHUB_TOKEN"

	configName = ".github-activity"
)

// Settings is the resolved configuration of a run.
type Settings struct {
	Limit         int
	JSON          bool
	Color         string
	Auth          bool
	Token         string
	WaitRateLimit bool
	Timeout       time.Duration
	APIURL        string
	Verbose       bool
}

// RegisterFlags defines the flags shared by every command.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default is $HOME/.github-activity.yaml)")
	fs.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	fs.Int("limit", domain.DisplayLimit, "Maximum number of events to display")
	fs.Bool("json", false, "Output results as JSON")
	fs.String("color", "auto", "Colorize output: auto, always or never")
	fs.Bool("auth", false, "Authenticate with the "+TokenEnv+" environment variable")
	fs.Bool("wait-rate-limit", false, "Wait out secondary rate limits instead of failing")
	fs.Duration("timeout", 0, "Abort the request after this duration (0 waits indefinitely)")
	fs.String("api-url", "", "GitHub REST API base URL (default https://api.github.com/)")
}

// Load resolves settings with the precedence flag > environment > config file > flag default.
// A missing default config file is ignored; a missing explicit one is an error.
func Load(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("token", TokenEnv); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", TokenEnv, err)
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(configName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := &Settings{
		Limit:         v.GetInt("limit"),
		JSON:          v.GetBool("json"),
		Color:         v.GetString("color"),
		Auth:          v.GetBool("auth"),
		WaitRateLimit: v.GetBool("wait-rate-limit"),
		Timeout:       v.GetDuration("timeout"),
		APIURL:        v.GetString("api-url"),
		Verbose:       v.GetBool("verbose"),
	}
	if s.Auth {
		s.Token = v.GetString("token")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings that can be checked without network access.
func (s *Settings) Validate() error {
	if s.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if s.Auth && s.Token == "" {
		return fmt.Errorf("--auth requires the %s environment variable", TokenEnv)
	}
	return nil
}
