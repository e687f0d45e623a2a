package errors_test

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	repoerrors "github.com/temirov/gareth/internal/repos/errors"
)

func TestOperationErrorMatchesCodeSentinel(testInstance *testing.T) {
	testCases := []struct {
		name     string
		code     repoerrors.Code
		sentinel error
	}{
		{name: "invalid_credential", code: repoerrors.CodeInvalidCredential, sentinel: repoerrors.ErrInvalidCredential},
		{name: "host_unavailable", code: repoerrors.CodeHostUnavailable, sentinel: repoerrors.ErrHostUnavailable},
		{name: "repository_not_found", code: repoerrors.CodeRepositoryNotFound, sentinel: repoerrors.ErrRepositoryNotFound},
		{name: "fork_forbidden", code: repoerrors.CodeForkForbidden, sentinel: repoerrors.ErrForkForbidden},
		{name: "clone_failed", code: repoerrors.CodeCloneFailed, sentinel: repoerrors.ErrCloneFailed},
		{name: "remote_setup_failed", code: repoerrors.CodeRemoteSetupFailed, sentinel: repoerrors.ErrRemoteSetupFailed},
		{name: "local_clone_missing", code: repoerrors.CodeLocalCloneMissing, sentinel: repoerrors.ErrLocalCloneMissing},
		{name: "directory_unavailable", code: repoerrors.CodeDirectoryUnavailable, sentinel: repoerrors.ErrDirectoryUnavailable},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			wrapped := fmt.Errorf("processing: %w", repoerrors.New(testCase.code, "chaoss/grimoirelab-elk", "failed", nil))
			require.ErrorIs(testInstance, wrapped, testCase.sentinel)

			code, found := repoerrors.CodeOf(wrapped)
			require.True(testInstance, found)
			require.Equal(testInstance, testCase.code, code)
		})
	}

	require.NotErrorIs(testInstance, repoerrors.New(repoerrors.CodeCloneFailed, "", "", nil), repoerrors.ErrRemoteSetupFailed)
}

func TestOperationErrorFormatting(testInstance *testing.T) {
	cause := stdErrors.New("exit status 128")

	withSubject := repoerrors.New(repoerrors.CodeCloneFailed, "chaoss/grimoirelab-elk", "unable to clone fork", cause)
	require.Equal(testInstance, "CloneFailed: chaoss/grimoirelab-elk: unable to clone fork", withSubject.Error())
	require.Equal(testInstance, "unable to clone fork: exit status 128", withSubject.Describe())
	require.ErrorIs(testInstance, withSubject, cause)

	withoutMessage := repoerrors.New(repoerrors.CodeHostUnavailable, "", "", cause)
	require.Equal(testInstance, "HostUnavailable: exit status 128", withoutMessage.Error())
	require.Equal(testInstance, "exit status 128", withoutMessage.Describe())

	_, found := repoerrors.CodeOf(cause)
	require.False(testInstance, found)
}
