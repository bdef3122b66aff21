package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/prdiff/config"
	"github.com/teranos/prdiff/errors"
	"gopkg.in/yaml.v3"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate prdiff configuration",
	Long: `Display and validate prdiff configuration.

Configuration sources (in order of precedence):
1. Environment variables (PRDIFF_* prefix, plus GITHUB_TOKEN)
2. Project config (nearest prdiff.toml, searching up directories)
3. User config (~/.prdiff/prdiff.toml)
4. System config (/etc/prdiff/prdiff.toml)
5. Default values

The token is always redacted.

Examples:
  prdiff config show                 # Show effective configuration
  prdiff config show --format json   # Show configuration in JSON format
  prdiff config get github.base_url  # Get a specific value
  prdiff config validate             # Validate configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., github.base_url, github.timeout)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate configuration and check that a GitHub token is present",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	redacted := cfg.Redacted()
	out := cmd.OutOrStdout()

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(redacted)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# prdiff configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(redacted)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# prdiff configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	value, ok := lookupKey(cfg.Redacted(), key)
	if !ok {
		return errors.Newf("configuration key %q not found", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

// lookupKey resolves a dotted key against the redacted config so the token
// never prints in full.
func lookupKey(cfg config.Config, key string) (any, bool) {
	switch key {
	case "github.token":
		return cfg.GitHub.Token, true
	case "github.base_url":
		return cfg.GitHub.BaseURL, true
	case "github.timeout":
		return cfg.GitHub.Timeout, true
	case "github.block_private_networks":
		return cfg.GitHub.BlockPrivateNetworks, true
	case "log.json":
		return cfg.Log.JSON, true
	default:
		return nil, false
	}
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	pterm.Success.Println("Configuration is valid")
	return nil
}
