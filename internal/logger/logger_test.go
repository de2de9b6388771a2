package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: the logger writes to the global log output.

func TestInitDir_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitDir(dir))
	defer Close()

	assert.Equal(t, filepath.Join(dir, "debug.log"), GetLogPath())

	LogInfo("player %s joined", "alice")
	LogError("bad frame: %d", 42)
	LogPanic("boom")

	data, err := os.ReadFile(GetLogPath())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Logger initialized")
	assert.Contains(t, content, "[INFO] player alice joined")
	assert.Contains(t, content, "[ERROR] bad frame: 42")
	assert.Contains(t, content, "[PANIC] boom")
	assert.Contains(t, content, "logger_test.go")
}

func TestInitDir_Rotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")
	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0o600))

	require.NoError(t, InitDir(dir))
	defer Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestInitDir_Reinit(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	require.NoError(t, InitDir(first))
	require.NoError(t, InitDir(second))
	defer Close()

	LogInfo("second only")

	data, err := os.ReadFile(filepath.Join(first, "debug.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "second only")

	data, err = os.ReadFile(filepath.Join(second, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "second only")
}
