package consts

// Terminal colors
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[91m"
	ColorGreen  = "\033[92m"
	ColorYellow = "\033[93m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[96m"
)

// Console level tags used by the program logger.
const (
	TagError   = "[ERROR]"
	TagWarn    = "[Warning]"
	TagSuccess = "[Success]"
	TagDebug   = "[Debug]"
	TagInfo    = "[Info]"
)

// ProgressPrefix starts every progress line written during a transfer.
const ProgressPrefix = "[download]"
