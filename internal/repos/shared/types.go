package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/gareth/internal/execshell"
	"github.com/temirov/gareth/internal/githubcli"
	"github.com/temirov/gareth/internal/gitrepo"
)

const (
	// OriginRemoteNameConstant identifies the remote git creates for the cloned fork.
	OriginRemoteNameConstant = "origin"
	// UpstreamRemoteNameConstant identifies the remote pointing at the original repository.
	UpstreamRemoteNameConstant = "upstream"
	// DefaultMainlineBranchConstant is the branch refreshed by update runs.
	DefaultMainlineBranchConstant = "master"
	// DefaultHostConstant is the git host used when none is configured.
	DefaultHostConstant = "github.com"
)

// FileSystem exposes filesystem operations required by workspace services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	MkdirAll(path string, permissions fs.FileMode) error
	ReadFile(path string) ([]byte, error)
}

// ConfirmationResult captures the outcome of a user confirmation prompt.
type ConfirmationResult struct {
	Confirmed bool
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (ConfirmationResult, error)
}

// ValuePrompter asks the operator for a value, returning defaultValue on empty input.
type ValuePrompter interface {
	Ask(prompt string, defaultValue string) (string, error)
}

// TerminalDetector reports whether the operator can answer prompts.
type TerminalDetector interface {
	IsInteractive() bool
}

// GitExecutor exposes the subset of shell execution used by workspace services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes the git operations used to create and refresh clones.
type GitRepositoryManager interface {
	CloneRepository(executionContext context.Context, options gitrepo.CloneOptions) error
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	RebaseOnto(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// GitHubClient exposes the host API calls used by the create workflow.
type GitHubClient interface {
	ResolveAuthenticatedUser(executionContext context.Context) (githubcli.Account, error)
	ResolveOrganization(executionContext context.Context, organization string) (githubcli.Account, error)
	ResolveRepository(executionContext context.Context, owner string, repository string) (githubcli.Repository, error)
	CreateFork(executionContext context.Context, owner string, repository string) (githubcli.Repository, error)
}
