package merge

import (
	"errors"
	"fmt"
	"io"
	"os"

	"grabarr/internal/domain/logger"

	"github.com/Eyevinn/mp4ff/mp4"
)

// VerifyFastStart reports whether the moov box precedes mdat in an MP4 file.
//
// Only top-level box headers are read; payloads are skipped.
func VerifyFastStart(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Pl.E("failed to close file %v due to error: %v", path, err)
		}
	}()

	for {
		hdr, err := mp4.DecodeHeader(f)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, fmt.Errorf("no moov or mdat box in %q", path)
			}
			return false, fmt.Errorf("decode %q: %w", path, err)
		}

		switch hdr.Name {
		case "moov":
			return true, nil
		case "mdat":
			return false, nil
		}

		if _, err := f.Seek(int64(hdr.Size)-int64(hdr.Hdrlen), io.SeekCurrent); err != nil {
			return false, fmt.Errorf("seek past %q box in %q: %w", hdr.Name, path, err)
		}
	}
}
