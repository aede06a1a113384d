package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, level string) (*ProgramLogger, *bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "test.log")
	pl, err := SetupLogging(LoggingConfig{
		LogFilePath: logPath,
		Console:     &buf,
		Program:     "test",
		Level:       level,
		NoColor:     true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pl.Close() })
	return pl, &buf, logPath
}

func TestProgramLoggerTags(t *testing.T) {
	t.Parallel()

	pl, buf, _ := newTestLogger(t, "info")
	pl.I("hello %s", "world")
	pl.S("done")
	pl.W("careful")
	pl.E("broken: %d", 3)

	out := buf.String()
	assert.Contains(t, out, "[Info] hello world")
	assert.Contains(t, out, "[Success] done")
	assert.Contains(t, out, "[Warning] careful")
	assert.Contains(t, out, "[ERROR] broken: 3")
}

func TestProgramLoggerLevelFilter(t *testing.T) {
	t.Parallel()

	pl, buf, _ := newTestLogger(t, "warn")
	pl.I("hidden")
	pl.S("hidden too")
	pl.D(1, "hidden debug")
	pl.W("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestProgramLoggerDebug(t *testing.T) {
	t.Parallel()

	pl, buf, _ := newTestLogger(t, "debug")
	pl.D(1, "level one")
	pl.D(3, "level three")

	out := buf.String()
	assert.Contains(t, out, "[Debug]")
	assert.Contains(t, out, "level one")
	assert.NotContains(t, out, "level three")
}

func TestProgramLoggerWritesFile(t *testing.T) {
	t.Parallel()

	pl, _, logPath := newTestLogger(t, "info")
	pl.E("to the file")
	require.NoError(t, pl.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"message":"to the file"`))
	assert.Contains(t, string(data), `"program":"test"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		_, err := ParseLevel(ok)
		assert.NoError(t, err, ok)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestZeroValueLoggerIsSilent(t *testing.T) {
	t.Parallel()

	pl := new(ProgramLogger)
	assert.NotPanics(t, func() {
		pl.I("nothing")
		pl.E("nothing")
		pl.D(1, "nothing")
		pl.P("nothing")
	})
}
