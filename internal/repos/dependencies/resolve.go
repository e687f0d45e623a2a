package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gareth/internal/execshell"
	"github.com/temirov/gareth/internal/githubcli"
	"github.com/temirov/gareth/internal/gitrepo"
	"github.com/temirov/gareth/internal/repos/filesystem"
	"github.com/temirov/gareth/internal/repos/shared"
	"github.com/temirov/gareth/internal/ui"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default. Human-readable
// logging routes command events through the console logger instead of structured entries.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var observers []execshell.CommandEventObserver
	if humanReadableLogging {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveGitHubClient returns the provided client or creates a GitHub CLI-backed implementation
// authenticated with the credentials.
func ResolveGitHubClient(existing shared.GitHubClient, executor shared.GitExecutor, credentials githubcli.Credentials) (shared.GitHubClient, error) {
	if existing != nil {
		return existing, nil
	}
	return githubcli.NewClient(executor, credentials)
}
