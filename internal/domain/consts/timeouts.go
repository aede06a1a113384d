package consts

import "time"

// Retry configuration.
const (
	DefaultMaxAttempts = 3
	RetryBackoffBase   = 1.5
)

// Progress reporting.
const (
	ProgressInterval = 250 * time.Millisecond
)

// Network timeouts.
const (
	HTTPDialTimeout     = 30 * time.Second
	HTTPTLSTimeout      = 10 * time.Second
	HTTPResponseTimeout = 30 * time.Second
	ScraperTimeout      = 60 * time.Second
	DatabaseTimeout     = 5 * time.Second
)

// Web server timeouts. Writes are unbounded since a request blocks for a whole download.
const (
	ServerReadHeaderTimeout = 10 * time.Second
	ServerShutdownTimeout   = 5 * time.Second
)

// UI and display.
const (
	MaxDisplayedItems = 24
)
