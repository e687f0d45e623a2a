package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gareth/internal/execshell"
)

const (
	gitCloneSubcommandConstant                  = "clone"
	gitRemoteSubcommandConstant                 = "remote"
	gitRemoteAddSubcommandConstant              = "add"
	gitCheckoutSubcommandConstant               = "checkout"
	gitFetchSubcommandConstant                  = "fetch"
	gitRebaseSubcommandConstant                 = "rebase"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	remoteReferenceTemplateConstant             = "%s/%s"
	executorNotConfiguredMessageConstant        = "git executor not configured"
	requiredValueMessageConstant                = "value required"
	invalidInputErrorTemplateConstant           = "%s: %s"
	operationErrorTemplateConstant              = "%s failed in %s: %v"
	repositoryPathFieldNameConstant             = "repository path"
	parentDirectoryFieldNameConstant            = "parent directory"
	directoryNameFieldNameConstant              = "directory name"
	remoteURLFieldNameConstant                  = "remote url"
	remoteNameFieldNameConstant                 = "remote name"
	branchNameFieldNameConstant                 = "branch name"
	cloneOperationNameConstant                  = OperationName("CloneRepository")
	addRemoteOperationNameConstant              = OperationName("AddRemote")
	checkoutOperationNameConstant               = OperationName("CheckoutBranch")
	fetchOperationNameConstant                  = OperationName("FetchRemote")
	rebaseOperationNameConstant                 = OperationName("RebaseOnto")
)

// OperationName identifies a RepositoryManager operation in errors.
type OperationName string

// GitCommandExecutor is the subset of execshell.ShellExecutor the manager needs.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces missing operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError reports a git command that failed for a repository.
type OperationError struct {
	Operation OperationName
	Directory string
	Cause     error
}

// Error describes the failed git operation.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Directory, operationError.Cause)
}

// Unwrap exposes the execshell failure.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// CloneOptions describes a clone into ParentDirectory/DirectoryName.
type CloneOptions struct {
	RemoteURL       string
	ParentDirectory string
	DirectoryName   string
}

// RepositoryManager runs git commands against explicit directories.
type RepositoryManager struct {
	executor GitCommandExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitCommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CloneRepository clones RemoteURL into DirectoryName, running git from ParentDirectory.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, options CloneOptions) error {
	parentDirectory, parentError := requireValue(parentDirectoryFieldNameConstant, options.ParentDirectory)
	if parentError != nil {
		return parentError
	}
	remoteURL, remoteError := requireValue(remoteURLFieldNameConstant, options.RemoteURL)
	if remoteError != nil {
		return remoteError
	}
	directoryName, directoryError := requireValue(directoryNameFieldNameConstant, options.DirectoryName)
	if directoryError != nil {
		return directoryError
	}

	return manager.executeGit(executionContext, cloneOperationNameConstant, parentDirectory,
		gitCloneSubcommandConstant, remoteURL, directoryName)
}

// AddRemote registers a named remote in the repository.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	directory, pathError := requireValue(repositoryPathFieldNameConstant, repositoryPath)
	if pathError != nil {
		return pathError
	}
	name, nameError := requireValue(remoteNameFieldNameConstant, remoteName)
	if nameError != nil {
		return nameError
	}
	url, urlError := requireValue(remoteURLFieldNameConstant, remoteURL)
	if urlError != nil {
		return urlError
	}

	return manager.executeGit(executionContext, addRemoteOperationNameConstant, directory,
		gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, name, url)
}

// CheckoutBranch switches the repository to the branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	directory, pathError := requireValue(repositoryPathFieldNameConstant, repositoryPath)
	if pathError != nil {
		return pathError
	}
	branch, branchError := requireValue(branchNameFieldNameConstant, branchName)
	if branchError != nil {
		return branchError
	}

	return manager.executeGit(executionContext, checkoutOperationNameConstant, directory, gitCheckoutSubcommandConstant, branch)
}

// FetchRemote fetches the named remote.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	directory, pathError := requireValue(repositoryPathFieldNameConstant, repositoryPath)
	if pathError != nil {
		return pathError
	}
	name, nameError := requireValue(remoteNameFieldNameConstant, remoteName)
	if nameError != nil {
		return nameError
	}

	return manager.executeGit(executionContext, fetchOperationNameConstant, directory, gitFetchSubcommandConstant, name)
}

// RebaseOnto rebases the current branch onto remoteName/branchName. A conflicting rebase is
// left in progress for the operator to resolve.
func (manager *RepositoryManager) RebaseOnto(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	directory, pathError := requireValue(repositoryPathFieldNameConstant, repositoryPath)
	if pathError != nil {
		return pathError
	}
	name, nameError := requireValue(remoteNameFieldNameConstant, remoteName)
	if nameError != nil {
		return nameError
	}
	branch, branchError := requireValue(branchNameFieldNameConstant, branchName)
	if branchError != nil {
		return branchError
	}

	return manager.executeGit(executionContext, rebaseOperationNameConstant, directory,
		gitRebaseSubcommandConstant, RemoteBranchReference(name, branch))
}

// RemoteBranchReference renders "remote/branch".
func RemoteBranchReference(remoteName string, branchName string) string {
	return fmt.Sprintf(remoteReferenceTemplateConstant, strings.TrimSpace(remoteName), strings.TrimSpace(branchName))
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, operation OperationName, directory string, arguments ...string) error {
	details := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: directory,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	}
	if _, executionError := manager.executor.ExecuteGit(executionContext, details); executionError != nil {
		return OperationError{Operation: operation, Directory: directory, Cause: executionError}
	}
	return nil
}

func requireValue(fieldName string, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return "", InvalidInputError{FieldName: fieldName, Message: requiredValueMessageConstant}
	}
	return trimmed, nil
}
