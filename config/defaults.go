package config

import (
	"github.com/spf13/viper"
)

// Defaults
const (
	DefaultBaseURL = "https://api.github.com/"

	// EnvPrefix is prepended to every automatically bound environment variable
	EnvPrefix = "PRDIFF"

	// ConfigFileName is the file searched for in system, user and project locations
	ConfigFileName = "prdiff.toml"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", DefaultBaseURL)
	v.SetDefault("github.timeout", "0s")
	v.SetDefault("github.block_private_networks", true)

	v.SetDefault("log.json", false)
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables.
// PRDIFF_GITHUB_TOKEN wins over the conventional GITHUB_TOKEN when both are set.
func BindSensitiveEnvVars(v *viper.Viper) {
	_ = v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
}
