package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gareth/internal/execshell"
	"github.com/temirov/gareth/internal/githubcli"
	"github.com/temirov/gareth/internal/repos/dependencies"
	"github.com/temirov/gareth/internal/repos/filesystem"
)

type stubExecutor struct{}

func (stubExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func (stubExecutor) ExecuteGitHubCLI(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func TestResolveDefaults(testInstance *testing.T) {
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))

	for _, humanReadable := range []bool{false, true} {
		executor, executorError := dependencies.ResolveGitExecutor(nil, zap.NewNop(), humanReadable)
		require.NoError(testInstance, executorError)
		require.IsType(testInstance, &execshell.ShellExecutor{}, executor)
	}

	manager, managerError := dependencies.ResolveGitRepositoryManager(nil, stubExecutor{})
	require.NoError(testInstance, managerError)
	require.NotNil(testInstance, manager)

	client, clientError := dependencies.ResolveGitHubClient(nil, stubExecutor{}, githubcli.Credentials{Token: "token"})
	require.NoError(testInstance, clientError)
	require.IsType(testInstance, &githubcli.Client{}, client)
}

func TestResolvePrefersExisting(testInstance *testing.T) {
	existing := stubExecutor{}
	executor, executorError := dependencies.ResolveGitExecutor(existing, nil, true)
	require.NoError(testInstance, executorError)
	require.Equal(testInstance, existing, executor)
}

func TestResolveRejectsMissingExecutor(testInstance *testing.T) {
	_, managerError := dependencies.ResolveGitRepositoryManager(nil, nil)
	require.Error(testInstance, managerError)

	_, clientError := dependencies.ResolveGitHubClient(nil, nil, githubcli.Credentials{})
	require.ErrorIs(testInstance, clientError, githubcli.ErrExecutorNotConfigured)
}
