// Package file contains utilities related to file operations (naming, paths, reading files).
package file

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"grabarr/internal/domain/logger"

	"github.com/spf13/viper"
)

// LoadConfigFile loads in the preset configuration file.
func LoadConfigFile(v *viper.Viper, file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("config file %q: %w", file, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %q is a directory", file)
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %q: %w", file, err)
	}
	return nil
}

// ReadFileLines loads lines from a file (one per line, ignoring '#' comment lines).
func ReadFileLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Pl.E("failed to close file %v due to error: %v", path, err)
		}
	}()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("no valid lines in file " + path)
	}
	return lines, nil
}
