package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	base := t.TempDir()
	fm := NewFileManager(
		filepath.Join(base, "input"),
		filepath.Join(base, "output"),
		filepath.Join(base, "archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func TestEnsureDirectories(t *testing.T) {
	fm := newTestManager(t)

	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)

	for _, name := range []string{"orders.csv", "backers.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, name), []byte("x"), 0644))
	}

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{filepath.Base(files[0]), filepath.Base(files[1])}
	assert.Contains(t, names, "orders.csv")
	assert.Contains(t, names, "backers.xlsx")
}

func TestDiscoverInputFilesEmptyDir(t *testing.T) {
	fm := newTestManager(t)

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestArchiveInputFile(t *testing.T) {
	fm := newTestManager(t)

	src := filepath.Join(fm.InputDir, "orders.csv")
	require.NoError(t, os.WriteFile(src, []byte("email\n"), 0644))

	archived, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(fm.ArchiveDir, "orders.csv"), archived)
	assert.False(t, FileExists(src))
	assert.True(t, FileExists(archived))
}

func TestWriteFailedOrderLog(t *testing.T) {
	fm := newTestManager(t)

	logPath, err := fm.WriteFailedOrderLog("orders.csv", []FailedOrder{
		{Key: "_jane_example_com", Email: "jane@example.com", Err: errors.New("email is invalid")},
	})
	require.NoError(t, err)
	require.True(t, FileExists(logPath))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	assert.Contains(t, string(data), "orders.csv")
	assert.Contains(t, string(data), "jane@example.com")
	assert.Contains(t, string(data), "email is invalid")
}

func TestWriteFailedOrderLogNoFailures(t *testing.T) {
	fm := newTestManager(t)

	logPath, err := fm.WriteFailedOrderLog("orders.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, "", logPath)
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("orders.csv", ".csv"))
	assert.True(t, HasExtension("ORDERS.CSV", ".csv"))
	assert.True(t, HasExtension("backers.XLSX", ".xlsx"))
	assert.False(t, HasExtension("orders.csv", ".xlsx"))
}
