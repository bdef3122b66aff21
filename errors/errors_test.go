package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrMissingToken, "export GITHUB_TOKEN=...")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "export GITHUB_TOKEN=...", hints[0])
	assert.True(t, Is(err, ErrMissingToken))
}

func TestNewInvalidParamsError(t *testing.T) {
	err := NewInvalidParamsError("missing required argument %q", "owner")

	assert.Equal(t, `missing required argument "owner"`, err.Error())
	assert.True(t, IsInvalidParamsError(err))
	assert.False(t, IsToolNotFoundError(err))
	assert.False(t, IsUpstreamError(err))
}

func TestNewToolNotFoundError(t *testing.T) {
	err := NewToolNotFoundError("delete_repo")

	assert.Equal(t, `unknown tool "delete_repo"`, err.Error())
	assert.True(t, IsToolNotFoundError(err))
	assert.False(t, IsInvalidParamsError(err))
}

func TestIsUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unauthorized", Wrap(ErrUnauthorized, "GET /repos/o/r/pulls/1"), true},
		{"forbidden", Wrap(ErrForbidden, "rate limited"), true},
		{"not found", Mark(New("404 Not Found"), ErrNotFound), true},
		{"unavailable", Wrap(ErrUpstreamUnavailable, "dial tcp"), true},
		{"invalid params", NewInvalidParamsError("bad"), false},
		{"plain", New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUpstreamError(tt.err))
		})
	}
}

func TestMarkPreservesMessage(t *testing.T) {
	base := New("GET https://api.github.com/repos/o/r/pulls/9: 404 Not Found []")
	marked := Mark(base, ErrNotFound)

	assert.Equal(t, base.Error(), marked.Error())
	assert.True(t, Is(marked, ErrNotFound))
	assert.True(t, Is(marked, base))
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestErrorChaining(t *testing.T) {
	err := Wrap(ErrNotFound, "pull request octocat/hello-world#42")
	err = WithDetail(err, "status 404")
	err = Wrap(err, "fetch diff")

	assert.True(t, Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "fetch diff")
	assert.Contains(t, err.Error(), "octocat/hello-world#42")

	details := GetAllDetails(err)
	assert.Contains(t, details, "status 404")
}

func ExampleWrap() {
	err := Wrap(ErrNotFound, "pull request octocat/hello-world#42")
	fmt.Println(err)
	// Output: pull request octocat/hello-world#42: not found
}

func ExampleWithHint() {
	err := WithHint(ErrMissingToken, "export GITHUB_TOKEN=<token>")

	hints := GetAllHints(err)
	fmt.Println(hints[0])
	// Output: export GITHUB_TOKEN=<token>
}
