package consts

// Program identity.
const (
	ProgramName = "grabarr"
	ProgramDir  = ".grabarr"

	// UserAgent is sent when a request carries none of its own.
	UserAgent = "Mozilla/5.0 (compatible; grabarr)"
)

// Exit codes returned by the CLI.
const (
	ExitOK             = 0
	ExitConfigError    = 1
	ExitDownloadFailed = 2
	ExitBatchPartial   = 3
)

// Web front end.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8827
)

// Flash messages shown by the web front end.
const (
	FlashSuccess    = "Download completed successfully!"
	FlashFailure    = "An error occurred and the download did not complete."
	FlashMissingURL = "Please enter a valid URL."
)
