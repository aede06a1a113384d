// Package provider looks up media resources and opens their streams.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"grabarr/internal/models"
)

// ErrInvalidURL is returned for URLs the provider cannot handle at all.
var ErrInvalidURL = errors.New("invalid URL")

// Provider is the remote catalog collaborator.
type Provider interface {
	// Fetch returns the resource metadata and its stream catalog.
	Fetch(ctx context.Context, rawURL string) (*models.Resource, error)
	// Open starts the transfer of one stream of res, returning its declared size (0 if unknown).
	Open(ctx context.Context, res *models.Resource, s *models.Stream) (io.ReadCloser, int64, error)
	// ResolveCollection lists the member URLs of a collection in order.
	ResolveCollection(ctx context.Context, rawURL string) ([]string, error)
}

// ValidateURL checks for an absolute http(s) URL with a host.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}
	return u, nil
}
