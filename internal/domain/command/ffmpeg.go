// Package command holds argument fragments for external programs.
package command

// FFmpeg
const (
	Overwrite = "-y"
	Input     = "-i"
	Map       = "-map"
	MovFlags  = "-movflags"
	FastStart = "+faststart"
)

// Stream mapping: first input's video stream 0, second input's audio stream 0.
const (
	MapFirstVideo  = "0:v:0"
	MapSecondAudio = "1:a:0"
)

// Codec selection
var (
	VideoCodecCopy = []string{"-c:v", "copy"}
	AudioCodecCopy = []string{"-c:a", "copy"}
	AudioToAAC     = []string{"-c:a", "aac"}
)

// AudioBitrate is followed by a value such as "192k".
const AudioBitrate = "-b:a"
