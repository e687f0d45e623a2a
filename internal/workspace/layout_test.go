package workspace_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gareth/internal/catalog"
	"github.com/temirov/gareth/internal/workspace"
)

func TestLayoutClonePathStaysInsideSourceDirectory(testInstance *testing.T) {
	sourceDirectory := filepath.Join(testInstance.TempDir(), "sources")
	layout := workspace.Layout{SourceDirectory: sourceDirectory}

	testCases := []struct {
		name         string
		reference    catalog.RepositoryRef
		expectedPath string
		expectError  bool
	}{
		{
			name:         "direct_child",
			reference:    catalog.RepositoryRef{Organization: "chaoss", Name: "grimoirelab-sigils"},
			expectedPath: filepath.Join(sourceDirectory, "grimoirelab-sigils"),
		},
		{
			name:        "parent_directory",
			reference:   catalog.RepositoryRef{Organization: "chaoss", Name: ".."},
			expectError: true,
		},
		{
			name:        "source_directory_itself",
			reference:   catalog.RepositoryRef{Organization: "chaoss", Name: "."},
			expectError: true,
		},
		{
			name:        "escaping_relative_path",
			reference:   catalog.RepositoryRef{Organization: "chaoss", Name: "../grimoirelab-elk"},
			expectError: true,
		},
		{
			name:        "nested_path",
			reference:   catalog.RepositoryRef{Organization: "chaoss", Name: "nested/grimoirelab-elk"},
			expectError: true,
		},
		{
			name:        "empty_name",
			reference:   catalog.RepositoryRef{Organization: "chaoss"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			clonePath, clonePathError := layout.ClonePath(testCase.reference)
			if testCase.expectError {
				var pathError workspace.ClonePathOutsideSourceError
				require.ErrorAs(testInstance, clonePathError, &pathError)
				require.Equal(testInstance, sourceDirectory, pathError.SourceDirectory)
				return
			}
			require.NoError(testInstance, clonePathError)
			require.Equal(testInstance, testCase.expectedPath, clonePath)
		})
	}
}
