package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/gareth/internal/catalog"
)

const (
	clonePathOutsideSourceTemplateConstant = "clone path %s for %s is not inside source directory %s"
	parentDirectoryElementConstant         = ".."
)

// Layout maps catalog entries to local clone paths under an absolute source directory.
type Layout struct {
	SourceDirectory string
}

// ClonePathOutsideSourceError reports a repository name that would place its clone outside the
// source directory or on the source directory itself.
type ClonePathOutsideSourceError struct {
	Repository      catalog.RepositoryRef
	ClonePath       string
	SourceDirectory string
}

// Error describes the rejected clone path.
func (pathError ClonePathOutsideSourceError) Error() string {
	return fmt.Sprintf(clonePathOutsideSourceTemplateConstant, pathError.ClonePath, pathError.Repository, pathError.SourceDirectory)
}

// ClonePath returns <source>/<repository-name>. The result is always a direct child of the
// source directory.
func (layout Layout) ClonePath(reference catalog.RepositoryRef) (string, error) {
	sourceDirectory := filepath.Clean(layout.SourceDirectory)
	clonePath := filepath.Join(sourceDirectory, reference.Name)

	relativePath, relativeError := filepath.Rel(sourceDirectory, clonePath)
	if relativeError != nil || !isDirectChild(relativePath) {
		return clonePath, ClonePathOutsideSourceError{Repository: reference, ClonePath: clonePath, SourceDirectory: sourceDirectory}
	}
	return clonePath, nil
}

func isDirectChild(relativePath string) bool {
	if relativePath == "." || relativePath == parentDirectoryElementConstant {
		return false
	}
	if strings.HasPrefix(relativePath, parentDirectoryElementConstant+string(filepath.Separator)) {
		return false
	}
	return !strings.ContainsRune(relativePath, filepath.Separator)
}
