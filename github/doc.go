// Package github fetches pull request diffs from the GitHub REST API.
//
// A Fetcher is built once at startup with the operator's token and reused for
// every tool call. Each FetchDiff performs exactly one request:
//
//	GET {base_url}repos/{owner}/{repo}/pulls/{pull_number}
//	Accept: application/vnd.github.v3.diff
//	Authorization: Bearer <token>
//
// and returns the response body verbatim. There is no retry.
//
// Usage:
//
//	fetcher, err := github.NewFetcher(github.Options{Token: cfg.GitHub.Token})
//	diff, err := fetcher.FetchDiff(ctx, github.DiffRequest{
//	    Owner: "octocat", Repo: "hello-world", PullNumber: 42,
//	})
//
// Failures are normalized onto the sentinels in the errors package
// (ErrUnauthorized, ErrForbidden, ErrNotFound, ErrUpstreamUnavailable) so
// callers can branch on errors.Is without inspecting go-github types.
package github
