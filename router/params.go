package router

import (
	"math"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/github"
)

// DiffParams are validated get_pr_diff arguments
type DiffParams struct {
	Owner      string
	Repo       string
	PullNumber int
}

// Request converts the parameters into a fetcher request
func (p DiffParams) Request() github.DiffRequest {
	return github.DiffRequest{
		Owner:      p.Owner,
		Repo:       p.Repo,
		PullNumber: p.PullNumber,
	}
}

// rawDiffArgs mirrors the input schema before validation.
// JSON numbers arrive as float64.
type rawDiffArgs struct {
	Owner      string  `mapstructure:"owner"`
	Repo       string  `mapstructure:"repo"`
	PullNumber float64 `mapstructure:"pullNumber"`
}

// ParseDiffParams validates untyped tool arguments.
// Every failure is marked errors.ErrInvalidParams.
func ParseDiffParams(arguments map[string]any) (DiffParams, error) {
	if arguments == nil {
		arguments = map[string]any{}
	}

	var raw rawDiffArgs
	var md mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &raw,
		Metadata: &md,
		// Schema property names are case-sensitive
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return DiffParams{}, errors.Wrap(err, "failed to build argument decoder")
	}

	if err := decoder.Decode(arguments); err != nil {
		return DiffParams{}, errors.Mark(
			errors.Wrap(err, "invalid arguments"), errors.ErrInvalidParams)
	}

	if len(md.Unset) > 0 {
		sort.Strings(md.Unset)
		return DiffParams{}, errors.NewInvalidParamsError(
			"missing required argument(s): %s", strings.Join(md.Unset, ", "))
	}

	if strings.TrimSpace(raw.Owner) == "" {
		return DiffParams{}, errors.NewInvalidParamsError("%s must be a non-empty string", ArgOwner)
	}
	if strings.TrimSpace(raw.Repo) == "" {
		return DiffParams{}, errors.NewInvalidParamsError("%s must be a non-empty string", ArgRepo)
	}

	n := raw.PullNumber
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return DiffParams{}, errors.NewInvalidParamsError("%s must be an integer, got %v", ArgPullNumber, n)
	}
	if n < 1 || n > math.MaxInt32 {
		return DiffParams{}, errors.NewInvalidParamsError("%s out of range: %v", ArgPullNumber, n)
	}

	return DiffParams{
		Owner:      raw.Owner,
		Repo:       raw.Repo,
		PullNumber: int(n),
	}, nil
}
