package config

import (
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/internal/httpclient"
)

// Validate checks that the configuration is valid.
// A missing token is not a validation error here; see RequireToken.
func (c *Config) Validate() error {
	// Same guard the fetcher applies per request, so a bad base URL fails at startup
	block := c.GitHub.BlockPrivateNetworks
	guard := httpclient.NewSaferClientWithOptions(0, httpclient.Options{BlockPrivateIP: &block})
	if _, err := guard.ValidateURL(c.GitHub.BaseURL); err != nil {
		return errors.Mark(errors.Wrapf(err, "github.base_url %q", c.GitHub.BaseURL), errors.ErrInvalidConfig)
	}

	if c.GitHub.Timeout < 0 {
		return errors.Mark(errors.Newf("github.timeout must be >= 0, got %s", c.GitHub.Timeout), errors.ErrInvalidConfig)
	}

	return nil
}

// RequireToken fails when no GitHub token is configured.
// The server must not start serving without one.
func (c *Config) RequireToken() error {
	if c.GitHub.Token == "" {
		return errors.WithHint(
			errors.WithStack(errors.ErrMissingToken),
			"export GITHUB_TOKEN=<token> (or PRDIFF_GITHUB_TOKEN, or github.token in prdiff.toml)",
		)
	}
	return nil
}
