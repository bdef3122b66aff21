package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/teranos/prdiff/config"
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/github"
	"github.com/teranos/prdiff/logger"
	"github.com/teranos/prdiff/router"
	"github.com/teranos/prdiff/version"
)

// loadConfig reads the --config file when given, otherwise the search path
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// ConfiguredJSONLogs reports log.json from configuration, false if it cannot be read
func ConfiguredJSONLogs(cmd *cobra.Command) bool {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return false
	}
	return cfg.Log.JSON
}

// newRouter builds the fetcher and router from a validated configuration
func newRouter(cmd *cobra.Command, cfg *config.Config) (*router.Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	fetcher, err := github.NewFetcher(github.Options{
		Token:                cfg.GitHub.Token,
		BaseURL:              cfg.GitHub.BaseURL,
		Timeout:              cfg.GitHub.Timeout,
		BlockPrivateNetworks: cfg.GitHub.BlockPrivateNetworks,
		Logger:               logger.ComponentLogger("github"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GitHub client")
	}
	logger.Infow("GitHub client ready", logger.FieldBaseURL, fetcher.BaseURL())

	verbosity, _ := cmd.Flags().GetCount("verbose")
	return router.New(fetcher,
		router.WithLogger(logger.ComponentLogger("router")),
		router.WithVersion(version.Get().ServerVersion()),
		router.WithFrameTrace(logger.ShouldLogTrace(verbosity)),
	), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
