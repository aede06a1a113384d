package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/logger"
)

// UniquePath returns base if nothing exists there, else the first free "name (n).ext".
//
// Not atomic against other writers; callers allocate just before writing.
func UniquePath(base string) string {
	if !exists(base) {
		return base
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// OutputPath builds a unique path in dir for a sanitized title and extension.
//
// The tag is inserted before the extension, e.g. ".video" for merge temporaries.
func OutputPath(dir, title, tag, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	name := SanitizeName(title, consts.DefaultMaxNameLen) + tag + "." + ext
	return UniquePath(filepath.Join(dir, name))
}

// ResolveDefaultOutputDir picks the first writable download directory.
//
// Tries the user profile Downloads folder, then ~/Downloads, then ./downloads.
// Falls back to the working directory and never fails.
func ResolveDefaultOutputDir() string {
	return resolveOutputDir(defaultOutputCandidates())
}

func defaultOutputCandidates() []string {
	var candidates []string
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		candidates = append(candidates, filepath.Join(profile, consts.DownloadsDirName))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, consts.DownloadsDirName))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, consts.LocalDownloadsDir))
	} else {
		candidates = append(candidates, consts.LocalDownloadsDir)
	}
	return candidates
}

func resolveOutputDir(candidates []string) string {
	for _, dir := range candidates {
		if err := probeWritable(dir); err != nil {
			logger.Pl.D(2, "Output directory candidate %q unusable: %v", dir, err)
			continue
		}
		return dir
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// probeWritable creates dir and checks it accepts a marker file.
func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, consts.PermsDownloadDir); err != nil {
		return err
	}
	probe := filepath.Join(dir, consts.ProbeFileName)
	if err := os.WriteFile(probe, []byte("ok"), consts.PermsMediaFile); err != nil {
		return err
	}
	return os.Remove(probe)
}

// EnsureDir creates dir when missing.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("empty directory path")
	}
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%q exists and is not a directory", dir)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return err
	}
	return os.MkdirAll(dir, consts.PermsDownloadDir)
}

// RemoveQuietly deletes each path, ignoring failures.
func RemoveQuietly(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Pl.D(1, "Could not remove %q: %v", p, err)
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
