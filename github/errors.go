package github

import (
	"net/http"

	gh "github.com/google/go-github/v74/github"
	"github.com/teranos/prdiff/errors"
)

// normalizeError maps go-github failures onto the upstream sentinels.
// The original error stays in the chain for its message and details.
func normalizeError(err error, resp *gh.Response) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return errors.Mark(err, errors.ErrForbidden)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return errors.Mark(err, errors.ErrForbidden)
	}

	switch statusCode(resp) {
	case http.StatusUnauthorized:
		return errors.Mark(err, errors.ErrUnauthorized)
	case http.StatusForbidden, http.StatusTooManyRequests:
		return errors.Mark(err, errors.ErrForbidden)
	case http.StatusNotFound:
		return errors.Mark(err, errors.ErrNotFound)
	default:
		// 5xx, 422, DNS, TLS, connection resets, cancelled contexts
		return errors.Mark(err, errors.ErrUpstreamUnavailable)
	}
}
