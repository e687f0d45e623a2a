package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// expandHome resolves a leading "~" or "~/" to the home directory. Paths such as "~other" and
// failures to resolve the home directory leave the candidate unchanged.
func expandHome(candidatePath string, provider HomeDirectoryProvider) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) || provider == nil {
		return candidatePath
	}

	relativePath := ""
	switch {
	case candidatePath == tildeSymbolConstant:
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		relativePath = strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant)
	case strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)):
		relativePath = strings.TrimPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator))
	default:
		return candidatePath
	}

	homeDirectory, homeError := provider()
	if homeError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}
	return filepath.Join(homeDirectory, relativePath)
}
