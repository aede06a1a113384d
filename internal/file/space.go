package file

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
)

// CheckFreeSpace returns an error when dir's filesystem has less than need bytes free.
//
// An unknown size (need <= 0) always passes.
func CheckFreeSpace(dir string, need int64) error {
	if need <= 0 {
		return nil
	}
	usage, err := disk.Usage(dir)
	if err != nil {
		return fmt.Errorf("could not read disk usage for %q: %w", dir, err)
	}
	if usage.Free < uint64(need) {
		return fmt.Errorf("only %s free in %q, need %s",
			humanize.IBytes(usage.Free), dir, humanize.IBytes(uint64(need)))
	}
	return nil
}
