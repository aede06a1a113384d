// Package paths initializes grabarr's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"grabarr/internal/domain/consts"
)

const (
	dbFile  = "grabarr.db"
	logFile = "grabarr.log"
)

// File and directory path strings.
var (
	HomeProgDir string
	DBFilePath  string
	LogFilePath string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
func InitProgFilesDirs() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}

	// Home program dir ~/.grabarr
	HomeProgDir = filepath.Join(home, consts.ProgramDir)
	if _, err := os.Stat(HomeProgDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeProgDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	DBFilePath = filepath.Join(HomeProgDir, dbFile)
	LogFilePath = filepath.Join(HomeProgDir, logFile)
	return nil
}
