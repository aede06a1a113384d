package downloads

// State is a step of one download attempt.
type State int

// Attempt states.
const (
	StateInit State = iota
	StateMetadataFetched
	StateStreamsSelected
	StateAudioOnlyDownload
	StateSingleStreamDownload
	StateMergeDownload
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateInit:                 "init",
	StateMetadataFetched:      "metadata-fetched",
	StateStreamsSelected:      "streams-selected",
	StateAudioOnlyDownload:    "audio-only-download",
	StateSingleStreamDownload: "single-stream-download",
	StateMergeDownload:        "merge-download",
	StateDone:                 "done",
	StateFailed:               "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
