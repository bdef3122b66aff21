package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/internal/httpclient"
	"github.com/teranos/prdiff/logger"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public GitHub REST endpoint
const DefaultBaseURL = "https://api.github.com/"

// DiffRequest identifies a pull request
type DiffRequest struct {
	Owner      string
	Repo       string
	PullNumber int
}

// String renders the request as owner/repo#number
func (r DiffRequest) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.PullNumber)
}

// Options configures a Fetcher
type Options struct {
	// Token authenticates every request. Required.
	Token string

	// BaseURL of the REST API; defaults to DefaultBaseURL. GitHub Enterprise
	// Server uses https://<host>/api/v3/.
	BaseURL string

	// Timeout bounds each HTTP request; 0 leaves only the caller's context.
	Timeout time.Duration

	// BlockPrivateNetworks refuses loopback and private destinations
	BlockPrivateNetworks bool

	// HTTPClient overrides the guarded client built from the fields above
	HTTPClient *http.Client

	Logger *zap.SugaredLogger
}

// Fetcher retrieves pull request diffs. Safe for concurrent use.
type Fetcher struct {
	client  *gh.Client
	baseURL string
	logger  *zap.SugaredLogger
}

// NewFetcher creates a Fetcher bound to a single token
func NewFetcher(opts Options) (*Fetcher, error) {
	if opts.Token == "" {
		return nil, errors.WithStack(errors.ErrMissingToken)
	}

	baseURL, err := normalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		block := opts.BlockPrivateNetworks
		httpClient = httpclient.NewSaferClientWithOptions(opts.Timeout, httpclient.Options{
			BlockPrivateIP: &block,
		}).Client
	}

	client := gh.NewClient(httpClient).WithAuthToken(opts.Token)
	client.BaseURL = baseURL

	log := opts.Logger
	if log == nil {
		log = logger.ComponentLogger("github")
	}

	return &Fetcher{
		client:  client,
		baseURL: baseURL.String(),
		logger:  log,
	}, nil
}

// BaseURL returns the REST endpoint requests are sent to
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// FetchDiff returns the unified diff of a pull request, unmodified.
func (f *Fetcher) FetchDiff(ctx context.Context, req DiffRequest) (string, error) {
	log := logger.LoggerFromContext(ctx, f.logger)
	start := time.Now()

	diff, resp, err := f.client.PullRequests.GetRaw(ctx, req.Owner, req.Repo, req.PullNumber,
		gh.RawOptions{Type: gh.Diff})

	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		err = normalizeError(err, resp)
		log.Debugw("GitHub diff request failed",
			logger.FieldOwner, req.Owner,
			logger.FieldRepo, req.Repo,
			logger.FieldPullNumber, req.PullNumber,
			logger.FieldStatus, statusCode(resp),
			logger.FieldDurationMS, elapsed,
			logger.FieldError, err)
		return "", errors.Wrapf(err, "fetch diff for %s", req)
	}

	log.Debugw("GitHub diff fetched",
		logger.FieldOwner, req.Owner,
		logger.FieldRepo, req.Repo,
		logger.FieldPullNumber, req.PullNumber,
		logger.FieldSize, len(diff),
		logger.FieldDurationMS, elapsed)

	return diff, nil
}

func normalizeBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		raw = DefaultBaseURL
	}
	// go-github rejects base URLs without a trailing slash
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "invalid GitHub base URL %q", raw), errors.ErrInvalidConfig)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Mark(errors.Newf("invalid GitHub base URL %q", raw), errors.ErrInvalidConfig)
	}
	return u, nil
}

func statusCode(resp *gh.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
