package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gareth/internal/repos/filesystem"
)

func TestOSFileSystemRoundTrip(testInstance *testing.T) {
	fileSystem := filesystem.OSFileSystem{}
	workspaceRoot := testInstance.TempDir()
	sourcesDirectory := filepath.Join(workspaceRoot, "nested", "sources")

	require.NoError(testInstance, fileSystem.MkdirAll(sourcesDirectory, 0o755))
	info, statError := fileSystem.Stat(sourcesDirectory)
	require.NoError(testInstance, statError)
	require.True(testInstance, info.IsDir())

	catalogPath := filepath.Join(workspaceRoot, "catalog.yaml")
	require.NoError(testInstance, os.WriteFile(catalogPath, []byte("repositories: []\n"), 0o600))
	contents, readError := fileSystem.ReadFile(catalogPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "repositories: []\n", string(contents))

	absolutePath, absError := fileSystem.Abs(filepath.Join(workspaceRoot, "nested", "..", "catalog.yaml"))
	require.NoError(testInstance, absError)
	require.Equal(testInstance, catalogPath, absolutePath)

	_, missingError := fileSystem.Stat(filepath.Join(workspaceRoot, "missing"))
	require.ErrorIs(testInstance, missingError, os.ErrNotExist)
}
