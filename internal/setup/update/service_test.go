package update_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gareth/internal/catalog"
	"github.com/temirov/gareth/internal/gitrepo"
	repoerrors "github.com/temirov/gareth/internal/repos/errors"
	"github.com/temirov/gareth/internal/repos/filesystem"
	"github.com/temirov/gareth/internal/repos/shared"
	"github.com/temirov/gareth/internal/setup/update"
	"github.com/temirov/gareth/internal/workspace"
)

type recordingRepositoryManager struct {
	checkoutErrors map[string]error
	fetchErrors    map[string]error
	rebaseErrors   map[string]error
	calls          []string
}

func (manager *recordingRepositoryManager) CloneRepository(context.Context, gitrepo.CloneOptions) error {
	manager.calls = append(manager.calls, "clone")
	return errors.New("unexpected clone")
}

func (manager *recordingRepositoryManager) AddRemote(context.Context, string, string, string) error {
	manager.calls = append(manager.calls, "remote")
	return errors.New("unexpected remote")
}

func (manager *recordingRepositoryManager) CheckoutBranch(_ context.Context, repositoryPath string, branchName string) error {
	manager.calls = append(manager.calls, "checkout "+filepath.Base(repositoryPath)+" "+branchName)
	return manager.checkoutErrors[filepath.Base(repositoryPath)]
}

func (manager *recordingRepositoryManager) FetchRemote(_ context.Context, repositoryPath string, remoteName string) error {
	manager.calls = append(manager.calls, "fetch "+filepath.Base(repositoryPath)+" "+remoteName)
	return manager.fetchErrors[filepath.Base(repositoryPath)]
}

func (manager *recordingRepositoryManager) RebaseOnto(_ context.Context, repositoryPath string, remoteName string, branchName string) error {
	manager.calls = append(manager.calls, "rebase "+filepath.Base(repositoryPath)+" "+remoteName+"/"+branchName)
	return manager.rebaseErrors[filepath.Base(repositoryPath)]
}

type testHarness struct {
	service   *update.Service
	manager   *recordingRepositoryManager
	output    *bytes.Buffer
	logs      *observer.ObservedLogs
	layout    workspace.Layout
	catalog   catalog.Catalog
	directory string
}

func newHarness(testInstance *testing.T, manager *recordingRepositoryManager, clonedNames []string, entries ...string) testHarness {
	testInstance.Helper()
	sourceDirectory := testInstance.TempDir()
	for _, name := range clonedNames {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(sourceDirectory, name), 0o755))
	}

	parsedCatalog, parseError := catalog.FromStrings(entries)
	require.NoError(testInstance, parseError)

	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	output := &bytes.Buffer{}
	service, creationError := update.NewService(update.Dependencies{
		FileSystem:        filesystem.OSFileSystem{},
		RepositoryManager: manager,
		Reporter:          shared.NewWriterReporter(output),
		Logger:            zap.New(observerCore),
	})
	require.NoError(testInstance, creationError)

	return testHarness{
		service:   service,
		manager:   manager,
		output:    output,
		logs:      observedLogs,
		layout:    workspace.Layout{SourceDirectory: sourceDirectory},
		catalog:   parsedCatalog,
		directory: sourceDirectory,
	}
}

func TestUpdateServiceSkipsMissingClonesWithoutGitCalls(testInstance *testing.T) {
	harness := newHarness(testInstance, &recordingRepositoryManager{}, nil, "chaoss/grimoirelab-elk", "chaoss/grimoirelab-kibiter")

	result := harness.service.Run(context.Background(), harness.layout, harness.catalog, update.Options{})

	require.Zero(testInstance, result.Succeeded())
	require.Equal(testInstance, 2, result.Failed())
	require.Empty(testInstance, harness.manager.calls)
	for _, item := range result.Items {
		require.Equal(testInstance, update.StateMissing, item.State)
		require.ErrorIs(testInstance, item.Error, repoerrors.ErrLocalCloneMissing)
	}
	require.Equal(testInstance,
		"UPDATE-SKIPPED: chaoss/grimoirelab-elk [LocalCloneMissing] no local clone at "+filepath.Join(harness.directory, "grimoirelab-elk")+"; run with --create first\n"+
			"UPDATE-SKIPPED: chaoss/grimoirelab-kibiter [LocalCloneMissing] no local clone at "+filepath.Join(harness.directory, "grimoirelab-kibiter")+"; run with --create first\n",
		harness.output.String())
}

func TestUpdateServiceTreatsFileAsMissingClone(testInstance *testing.T) {
	harness := newHarness(testInstance, &recordingRepositoryManager{}, nil, "chaoss/grimoirelab-elk")
	require.NoError(testInstance, os.WriteFile(filepath.Join(harness.directory, "grimoirelab-elk"), []byte("x"), 0o600))

	result := harness.service.Run(context.Background(), harness.layout, harness.catalog, update.Options{})

	require.ErrorIs(testInstance, result.Items[0].Error, repoerrors.ErrLocalCloneMissing)
	require.Contains(testInstance, harness.output.String(), "is not a directory")
	require.Empty(testInstance, harness.manager.calls)
}

func TestUpdateServiceRefreshesEveryClone(testInstance *testing.T) {
	harness := newHarness(testInstance, &recordingRepositoryManager{}, []string{"grimoirelab-elk", "grimoirelab-sirmordred"}, "chaoss/grimoirelab-elk", "chaoss/grimoirelab-sirmordred")

	result := harness.service.Run(context.Background(), harness.layout, harness.catalog, update.Options{})

	require.Equal(testInstance, 2, result.Succeeded())
	require.Equal(testInstance, []string{
		"checkout grimoirelab-elk master",
		"fetch grimoirelab-elk upstream",
		"rebase grimoirelab-elk upstream/master",
		"checkout grimoirelab-sirmordred master",
		"fetch grimoirelab-sirmordred upstream",
		"rebase grimoirelab-sirmordred upstream/master",
	}, harness.manager.calls)
	require.Equal(testInstance, update.StateRebased, result.Items[0].State)
	require.NoError(testInstance, result.Items[0].Error)
	require.Equal(testInstance,
		"UPDATED: "+filepath.Join(harness.directory, "grimoirelab-elk")+" (checkout ok, fetch ok, rebase ok)\n"+
			"UPDATED: "+filepath.Join(harness.directory, "grimoirelab-sirmordred")+" (checkout ok, fetch ok, rebase ok)\n",
		harness.output.String())
}

func TestUpdateServiceRunsEveryStepAfterFailures(testInstance *testing.T) {
	testCases := []struct {
		name             string
		manager          *recordingRepositoryManager
		expectedState    update.SyncState
		expectedSteps    string
		expectRebaseCode bool
	}{
		{
			name:             "fetch_and_rebase_failed",
			manager:          &recordingRepositoryManager{fetchErrors: map[string]error{"grimoirelab-elk": errors.New("could not resolve host")}, rebaseErrors: map[string]error{"grimoirelab-elk": errors.New("conflict")}},
			expectedState:    update.StateRebaseFailed,
			expectedSteps:    "checkout ok, fetch failed, rebase failed",
			expectRebaseCode: true,
		},
		{
			name:          "checkout_failed",
			manager:       &recordingRepositoryManager{checkoutErrors: map[string]error{"grimoirelab-elk": errors.New("local changes would be overwritten")}},
			expectedState: update.StateRebased,
			expectedSteps: "checkout failed, fetch ok, rebase ok",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newHarness(testInstance, testCase.manager, []string{"grimoirelab-elk"}, "chaoss/grimoirelab-elk")

			result := harness.service.Run(context.Background(), harness.layout, harness.catalog, update.Options{})

			require.Equal(testInstance, 1, result.Failed())
			require.Len(testInstance, harness.manager.calls, 3)
			item := result.Items[0]
			require.Equal(testInstance, testCase.expectedState, item.State)
			require.Len(testInstance, item.Steps, 3)
			require.Error(testInstance, item.Error)
			if testCase.expectRebaseCode {
				require.ErrorIs(testInstance, item.Error, repoerrors.ErrRebaseFailed)
			} else {
				require.NotErrorIs(testInstance, item.Error, repoerrors.ErrRebaseFailed)
			}
			require.Equal(testInstance,
				"UPDATE-INCOMPLETE: "+item.ClonePath+" ["+string(testCase.expectedState)+"] ("+testCase.expectedSteps+")\n",
				harness.output.String())
			require.NotZero(testInstance, harness.logs.FilterMessage("refresh step failed").Len())
		})
	}
}

func TestUpdateServiceDryRunPlansWithoutGitCalls(testInstance *testing.T) {
	harness := newHarness(testInstance, &recordingRepositoryManager{}, []string{"grimoirelab-elk"}, "chaoss/grimoirelab-elk", "chaoss/grimoirelab-graal")

	result := harness.service.Run(context.Background(), harness.layout, harness.catalog, update.Options{
		Branch:             "main",
		UpstreamRemoteName: "chaoss",
		ExecutionMode:      shared.ExecutionDryRun,
	})

	require.Empty(testInstance, harness.manager.calls)
	require.Equal(testInstance, 1, result.Succeeded())
	require.Equal(testInstance, 1, result.Failed())
	require.True(testInstance, result.Items[0].Planned)
	require.Equal(testInstance,
		"PLAN-UPDATE: "+filepath.Join(harness.directory, "grimoirelab-elk")+" checkout main, fetch chaoss, rebase onto chaoss/main\n"+
			"UPDATE-SKIPPED: chaoss/grimoirelab-graal [LocalCloneMissing] no local clone at "+filepath.Join(harness.directory, "grimoirelab-graal")+"; run with --create first\n",
		harness.output.String())
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, fileSystemError := update.NewService(update.Dependencies{RepositoryManager: &recordingRepositoryManager{}})
	require.ErrorIs(testInstance, fileSystemError, update.ErrFileSystemNotConfigured)

	_, managerError := update.NewService(update.Dependencies{FileSystem: filesystem.OSFileSystem{}})
	require.ErrorIs(testInstance, managerError, update.ErrRepositoryManagerNotConfigured)
}

func TestUpdateServiceRejectsClonePathOutsideSourceDirectory(testInstance *testing.T) {
	harness := newHarness(testInstance, &recordingRepositoryManager{}, nil)
	escapingCatalog := catalog.New([]catalog.RepositoryRef{{Organization: "chaoss", Name: ".."}})

	result := harness.service.Run(context.Background(), harness.layout, escapingCatalog, update.Options{})

	require.Equal(testInstance, 1, result.Failed())
	require.Empty(testInstance, harness.manager.calls)
	require.ErrorIs(testInstance, result.Items[0].Error, repoerrors.ErrDirectoryUnavailable)
	var pathError workspace.ClonePathOutsideSourceError
	require.ErrorAs(testInstance, result.Items[0].Error, &pathError)
	require.Equal(testInstance,
		"UPDATE-SKIPPED: chaoss/.. [DirectoryUnavailable] chaoss/.. does not map to a directory inside the source directory\n",
		harness.output.String())
}
