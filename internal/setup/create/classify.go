package create

import (
	"fmt"

	"github.com/temirov/gareth/internal/githubcli"
	repoerrors "github.com/temirov/gareth/internal/repos/errors"
)

func classifyLookupError(subject string, message string, lookupError error) error {
	if githubcli.IsNotFound(lookupError) {
		return repoerrors.New(repoerrors.CodeRepositoryNotFound, subject, message, lookupError)
	}
	if githubcli.IsUnauthorized(lookupError) {
		return repoerrors.New(repoerrors.CodeInvalidCredential, subject, message, lookupError)
	}
	return repoerrors.New(repoerrors.CodeHostUnavailable, subject, message, lookupError)
}

func classifyForkError(subject string, forkError error) error {
	switch {
	case githubcli.IsForbidden(forkError):
		return repoerrors.New(repoerrors.CodeForkForbidden, subject, fmt.Sprintf(forkForbiddenMessageConstant, subject), forkError)
	case githubcli.IsNotFound(forkError):
		return repoerrors.New(repoerrors.CodeRepositoryNotFound, subject, fmt.Sprintf(forkFailedMessageConstant, subject), forkError)
	case githubcli.IsUnauthorized(forkError):
		return repoerrors.New(repoerrors.CodeInvalidCredential, subject, fmt.Sprintf(forkFailedMessageConstant, subject), forkError)
	default:
		return repoerrors.New(repoerrors.CodeHostUnavailable, subject, fmt.Sprintf(forkFailedMessageConstant, subject), forkError)
	}
}
