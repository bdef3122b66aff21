package httpclient

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaferClientDefaults(t *testing.T) {
	client := NewSaferClientWithOptions(30*time.Second, Options{})
	require.NotNil(t, client)

	assert.Equal(t, 30*time.Second, client.Timeout)
	assert.Equal(t, 10, client.maxRedirects)
	assert.True(t, client.blockPrivateIP)
	assert.IsType(t, &guardedTransport{}, client.Transport)
}

func TestNewSaferClientZeroTimeout(t *testing.T) {
	client := NewSaferClientWithOptions(0, Options{})
	assert.Equal(t, time.Duration(0), client.Timeout)
}

func TestValidateURL(t *testing.T) {
	client := NewSaferClientWithOptions(30*time.Second, Options{})

	tests := []struct {
		name        string
		url         string
		errContains string
	}{
		{name: "GitHub API", url: "https://api.github.com/repos/octocat/hello-world/pulls/42"},
		{name: "Enterprise API", url: "https://github.example.com/api/v3/"},
		{name: "File scheme blocked", url: "file:///etc/passwd", errContains: "scheme"},
		{name: "FTP scheme blocked", url: "ftp://example.com", errContains: "scheme"},
		{name: "Localhost blocked", url: "http://localhost/admin", errContains: "localhost"},
		{name: "Localhost subdomain blocked", url: "http://api.localhost/", errContains: "localhost"},
		{name: "Loopback IP blocked", url: "http://127.0.0.1:8080/", errContains: "private IP"},
		{name: "Metadata IP blocked", url: "http://169.254.169.254/latest/meta-data", errContains: "private IP"},
		{name: "Private range blocked", url: "https://10.1.2.3/api/v3/", errContains: "private IP"},
		{name: "IPv6 loopback blocked", url: "http://[::1]/", errContains: "private IP"},
		{name: "Userinfo confusion blocked", url: "http://api.github.com@localhost/", errContains: "userinfo"},
		{name: "Missing hostname", url: "https:///path", errContains: "hostname"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.ValidateURL(tt.url)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip        string
		isPrivate bool
	}{
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"169.254.169.254", true},
		{"0.0.0.0", true},
		{"224.0.0.1", true},
		{"240.0.0.1", true},
		{"140.82.112.6", false}, // api.github.com
		{"8.8.8.8", false},
		{"172.32.0.1", false},
		{"::1", true},
		{"fe80::1", true},
		{"fc00::1", true},
		{"fd12:3456::1", true},
		{"2001:db8::1", true},
		{"2606:50c0:8000::154", false}, // GitHub IPv6
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip)
			assert.Equal(t, tt.isPrivate, isPrivateIP(ip))
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		hostname string
		expected bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost.localdomain", true},
		{"admin.localhost", true},
		{"api.github.com", false},
		{"local", false},
		{"local.host", false},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			assert.Equal(t, tt.expected, isLocalhost(tt.hostname))
		})
	}
}

func TestOptions(t *testing.T) {
	maxRedirects := 5
	blockPrivateIP := false
	client := NewSaferClientWithOptions(30*time.Second, Options{
		AllowedSchemes: []string{"https"},
		MaxRedirects:   &maxRedirects,
		BlockPrivateIP: &blockPrivateIP,
	})

	assert.Equal(t, []string{"https"}, client.allowedSchemes)
	assert.Equal(t, 5, client.maxRedirects)
	assert.False(t, client.blockPrivateIP)

	_, err := client.ValidateURL("http://example.com")
	assert.Error(t, err, "HTTP must be blocked with HTTPS-only config")

	_, err = client.ValidateURL("https://10.0.0.5/api/v3/")
	assert.NoError(t, err, "private hosts allowed when blocking is disabled")
}

func TestTransportBlocksLocalhost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()

	client := NewSaferClientWithOptions(5*time.Second, Options{})

	// The embedded *http.Client is what go-github holds; it must still be guarded
	resp, err := client.Client.Get(server.URL)
	if err == nil {
		resp.Body.Close()
		t.Fatal("expected loopback request to be blocked")
	}
	assert.Contains(t, err.Error(), "SSRF protection")
}

func TestWrapClientAllowsTestServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := WrapClient(server.Client())

	resp, err := client.Client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRedirectProtection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "file:///etc/passwd", http.StatusFound)
	}))
	defer server.Close()

	client := WrapClient(server.Client())

	resp, err := client.Client.Get(server.URL)
	if err == nil {
		resp.Body.Close()
		t.Fatal("expected redirect to file scheme to be blocked")
	}
	assert.Contains(t, err.Error(), "redirect blocked")
}

func TestMaxRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer server.Close()

	client := WrapClient(server.Client())

	resp, err := client.Client.Get(server.URL)
	if err == nil {
		resp.Body.Close()
		t.Fatal("expected redirect limit error")
	}
	assert.Contains(t, err.Error(), "stopped after 10 redirects")
}
