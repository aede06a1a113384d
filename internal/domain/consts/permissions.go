package consts

// Recommended permissions for different types of files and directories grabarr might create.
const (
	// ** World Readable **
	PermsGenericDir  = 0o755
	PermsDownloadDir = 0o755
	PermsMediaFile   = 0o644
	PermsLogFile     = 0o644

	// ** Private **
	PermsHomeProgDir = 0o750
	PermsConfigFile  = 0o600
)
