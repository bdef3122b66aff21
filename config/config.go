// Package config loads prdiff configuration from defaults, TOML files and the
// environment using Viper.
//
// Sources, lowest to highest precedence:
//
//	defaults
//	/etc/prdiff/prdiff.toml
//	~/.prdiff/prdiff.toml
//	./prdiff.toml (nearest one walking up from the working directory)
//	environment (PRDIFF_* and GITHUB_TOKEN)
//
// Example prdiff.toml:
//
//	[github]
//	base_url = "https://github.example.com/api/v3/"
//	timeout = "30s"
//
//	[log]
//	json = true
package config

import "time"

// Config represents the prdiff configuration
type Config struct {
	GitHub GitHubConfig `mapstructure:"github" json:"github" yaml:"github" toml:"github"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// GitHubConfig configures the upstream GitHub REST API
type GitHubConfig struct {
	Token                string        `mapstructure:"token" json:"token" yaml:"token" toml:"token"`
	BaseURL              string        `mapstructure:"base_url" json:"base_url" yaml:"base_url" toml:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" toml:"timeout"` // 0 = no client-side timeout
	BlockPrivateNetworks bool          `mapstructure:"block_private_networks" json:"block_private_networks" yaml:"block_private_networks" toml:"block_private_networks"`
}

// LogConfig configures diagnostic logging (always written to stderr)
type LogConfig struct {
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
}

// Redacted returns a copy of the config safe to print
func (c Config) Redacted() Config {
	out := c
	out.GitHub.Token = redactToken(c.GitHub.Token)
	return out
}

func redactToken(token string) string {
	switch {
	case token == "":
		return ""
	case len(token) <= 8:
		return "****"
	default:
		return token[:4] + "****"
	}
}
