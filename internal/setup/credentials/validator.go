// Package credentials exchanges a GitHub token for an authenticated session.
package credentials

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gareth/internal/githubcli"
	repoerrors "github.com/temirov/gareth/internal/repos/errors"
	"github.com/temirov/gareth/internal/repos/shared"
)

const (
	clientMissingMessageConstant         = "github client not configured"
	tokenMissingMessageConstant          = "a GitHub token is required"
	tokenRejectedMessageConstant         = "the GitHub token was rejected; check that it is valid and not expired"
	hostUnavailableMessageConstant       = "unable to reach GitHub to validate the token"
	credentialSubjectConstant            = "token"
	authenticationRequiredMarkerConstant = "authentication required"
)

// ErrClientNotConfigured indicates the validator was constructed without a GitHub client.
var ErrClientNotConfigured = errors.New(clientMissingMessageConstant)

// Session is an authenticated host client together with the account that owns the token.
type Session struct {
	Login  string
	Client shared.GitHubClient
}

// Validator confirms that a token authenticates against the host.
type Validator struct {
	client shared.GitHubClient
	token  string
}

// NewValidator constructs a Validator for a client already configured with the token.
func NewValidator(client shared.GitHubClient, token string) (*Validator, error) {
	if client == nil {
		return nil, ErrClientNotConfigured
	}
	return &Validator{client: client, token: strings.TrimSpace(token)}, nil
}

// Validate resolves the authenticated login. It performs no host mutation.
func (validator *Validator) Validate(executionContext context.Context) (Session, error) {
	if len(validator.token) == 0 {
		return Session{}, repoerrors.New(repoerrors.CodeInvalidCredential, credentialSubjectConstant, tokenMissingMessageConstant, nil)
	}

	account, resolveError := validator.client.ResolveAuthenticatedUser(executionContext)
	if resolveError != nil {
		if isCredentialRejection(resolveError) {
			return Session{}, repoerrors.New(repoerrors.CodeInvalidCredential, credentialSubjectConstant, tokenRejectedMessageConstant, resolveError)
		}
		return Session{}, repoerrors.New(repoerrors.CodeHostUnavailable, credentialSubjectConstant, hostUnavailableMessageConstant, resolveError)
	}

	return Session{Login: account.Login, Client: validator.client}, nil
}

func isCredentialRejection(err error) bool {
	if githubcli.IsUnauthorized(err) {
		return true
	}
	var inputError githubcli.InvalidInputError
	if errors.As(err, &inputError) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), authenticationRequiredMarkerConstant)
}
