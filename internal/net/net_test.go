package net

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrivateNetwork(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"localhost":                 true,
		"http://localhost:8080/x":   true,
		"127.0.0.1":                 true,
		"10.1.2.3":                  true,
		"172.16.0.1":                true,
		"172.32.0.1":                false,
		"192.168.1.20:443":          true,
		"http://[::1]:80/":          true,
		"fd00::1":                   true,
		"fe80::1":                   true,
		"8.8.8.8":                   false,
		"https://1.1.1.1/watch?v=x": false,
		"":                          false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsPrivateNetwork(in), in)
	}
}

func TestParseBandwidth(t *testing.T) {
	t.Parallel()

	n, err := ParseBandwidth("")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = ParseBandwidth("2MB/s")
	require.NoError(t, err)
	assert.EqualValues(t, 2_000_000, n)

	n, err = ParseBandwidth("512KiB")
	require.NoError(t, err)
	assert.EqualValues(t, 512*1024, n)

	_, err = ParseBandwidth("fast")
	assert.Error(t, err)
}

func TestRootDomain(t *testing.T) {
	t.Parallel()

	d, err := RootDomain("https://m.youtube.com/watch?v=abc")
	require.NoError(t, err)
	assert.Equal(t, "youtube.com", d)

	d, err = RootDomain("https://www.bbc.co.uk/page")
	require.NoError(t, err)
	assert.Equal(t, "bbc.co.uk", d)

	_, err = RootDomain("not a url")
	assert.Error(t, err)
}

func TestNewClientRateLimitAndAgent(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("x", 100*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Agent", r.UserAgent())
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{BytesPerSec: 10 * 1024 * 1024, UserAgent: "grabarr-test"})
	require.NoError(t, err)
	require.NotNil(t, c.Jar)

	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Len(t, got, len(body))
	assert.Equal(t, "grabarr-test", resp.Header.Get("X-Agent"))
}
