package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gareth/internal/execshell"
	"github.com/temirov/gareth/internal/gitrepo"
)

const (
	testSourceDirectoryConstant = "/workspace/sources"
	testClonePathConstant       = "/workspace/sources/grimoirelab-elk"
	testForkURLConstant         = "https://github.com/octocat/grimoirelab-elk.git"
	testUpstreamURLConstant     = "https://github.com/chaoss/grimoirelab-elk.git"
)

type recordingGitExecutor struct {
	failures        map[string]error
	recordedDetails []execshell.CommandDetails
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if len(details.Arguments) > 0 {
		if failure, exists := executor.failures[details.Arguments[0]]; exists {
			return execshell.ExecutionResult{}, failure
		}
	}
	return execshell.ExecutionResult{}, nil
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
	require.Nil(testInstance, manager)
}

func TestRepositoryManagerCommands(testInstance *testing.T) {
	testCases := []struct {
		name              string
		invoke            func(manager *gitrepo.RepositoryManager) error
		expectedArguments []string
		expectedDirectory string
	}{
		{
			name: "clone_runs_in_parent_directory",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.CloneRepository(context.Background(), gitrepo.CloneOptions{
					RemoteURL:       testForkURLConstant,
					ParentDirectory: testSourceDirectoryConstant,
					DirectoryName:   "grimoirelab-elk",
				})
			},
			expectedArguments: []string{"clone", testForkURLConstant, "grimoirelab-elk"},
			expectedDirectory: testSourceDirectoryConstant,
		},
		{
			name: "add_remote",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.AddRemote(context.Background(), testClonePathConstant, "upstream", testUpstreamURLConstant)
			},
			expectedArguments: []string{"remote", "add", "upstream", testUpstreamURLConstant},
			expectedDirectory: testClonePathConstant,
		},
		{
			name: "checkout",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.CheckoutBranch(context.Background(), testClonePathConstant, " master ")
			},
			expectedArguments: []string{"checkout", "master"},
			expectedDirectory: testClonePathConstant,
		},
		{
			name: "fetch",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.FetchRemote(context.Background(), testClonePathConstant, "upstream")
			},
			expectedArguments: []string{"fetch", "upstream"},
			expectedDirectory: testClonePathConstant,
		},
		{
			name: "rebase",
			invoke: func(manager *gitrepo.RepositoryManager) error {
				return manager.RebaseOnto(context.Background(), testClonePathConstant, "upstream", "master")
			},
			expectedArguments: []string{"rebase", "upstream/master"},
			expectedDirectory: testClonePathConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			require.NoError(testInstance, testCase.invoke(manager))
			require.Len(testInstance, executor.recordedDetails, 1)

			recorded := executor.recordedDetails[0]
			require.Equal(testInstance, testCase.expectedArguments, recorded.Arguments)
			require.Equal(testInstance, testCase.expectedDirectory, recorded.WorkingDirectory)
			require.Equal(testInstance, "0", recorded.EnvironmentVariables["GIT_TERMINAL_PROMPT"])
		})
	}
}

func TestRepositoryManagerWrapsFailures(testInstance *testing.T) {
	rebaseFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: "CONFLICT"},
	}
	executor := &recordingGitExecutor{failures: map[string]error{"rebase": rebaseFailure}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	rebaseError := manager.RebaseOnto(context.Background(), testClonePathConstant, "upstream", "master")

	var operationError gitrepo.OperationError
	require.True(testInstance, errors.As(rebaseError, &operationError))
	require.Equal(testInstance, gitrepo.OperationName("RebaseOnto"), operationError.Operation)
	require.Equal(testInstance, testClonePathConstant, operationError.Directory)

	var failedError execshell.CommandFailedError
	require.True(testInstance, errors.As(rebaseError, &failedError))
	require.Contains(testInstance, rebaseError.Error(), "CONFLICT")
}

func TestRepositoryManagerValidatesInputs(testInstance *testing.T) {
	executor := &recordingGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	validationErrors := []error{
		manager.CloneRepository(context.Background(), gitrepo.CloneOptions{RemoteURL: testForkURLConstant, DirectoryName: "grimoirelab-elk"}),
		manager.CloneRepository(context.Background(), gitrepo.CloneOptions{ParentDirectory: testSourceDirectoryConstant, DirectoryName: "grimoirelab-elk"}),
		manager.AddRemote(context.Background(), testClonePathConstant, " ", testUpstreamURLConstant),
		manager.CheckoutBranch(context.Background(), "", "master"),
		manager.FetchRemote(context.Background(), testClonePathConstant, ""),
		manager.RebaseOnto(context.Background(), testClonePathConstant, "upstream", ""),
	}

	for _, validationError := range validationErrors {
		require.IsType(testInstance, gitrepo.InvalidInputError{}, validationError)
	}
	require.Empty(testInstance, executor.recordedDetails)
}
