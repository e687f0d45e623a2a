package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gareth/internal/execshell"
)

const (
	apiSubcommandConstant                    = "api"
	methodFlagConstant                       = "-X"
	hostnameFlagConstant                     = "--hostname"
	httpMethodPostConstant                   = "POST"
	userEndpointConstant                     = "user"
	organizationEndpointTemplateConstant     = "orgs/%s"
	repositoryEndpointTemplateConstant       = "repos/%s/%s"
	forksEndpointTemplateConstant            = "repos/%s/%s/forks"
	defaultHostConstant                      = "github.com"
	tokenEnvironmentVariableConstant         = "GH_TOKEN"
	enterpriseTokenEnvironmentConstant       = "GH_ENTERPRISE_TOKEN"
	promptDisabledEnvironmentConstant        = "GH_PROMPT_DISABLED"
	promptDisabledValueConstant              = "1"
	organizationFieldNameConstant            = "organization"
	ownerFieldNameConstant                   = "owner"
	repositoryFieldNameConstant              = "repository"
	tokenFieldNameConstant                   = "token"
	requiredValueMessageConstant             = "value required"
	executorNotConfiguredMessageConstant     = "github cli executor not configured"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	operationErrorWithStatusTemplateConstant = "%s operation failed with HTTP %d: %s"
	responseDecodingErrorTemplateConstant    = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant        = "%s: %s"
	missingLoginMessageConstant              = "response did not include a login"
	resolveUserOperationNameConstant         = OperationName("ResolveAuthenticatedUser")
	resolveOrganizationOperationNameConstant = OperationName("ResolveOrganization")
	resolveRepositoryOperationNameConstant   = OperationName("ResolveRepository")
	createForkOperationNameConstant          = OperationName("CreateFork")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// Account describes a GitHub user or organization.
type Account struct {
	Login string
	Type  string
}

// Repository contains the repository details needed to fork and clone.
type Repository struct {
	Name          string
	FullName      string
	OwnerLogin    string
	DefaultBranch string
	Fork          bool
}

// Credentials identifies the token and host used for every request.
type Credentials struct {
	Token string
	Host  string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor    GitHubCommandExecutor
	credentials Credentials
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations. StatusCode is zero when gh
// did not report an HTTP status, for example when the host could not be reached.
type OperationError struct {
	Operation  OperationName
	StatusCode int
	Cause      error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	if operationError.StatusCode > 0 {
		return fmt.Sprintf(operationErrorWithStatusTemplateConstant, operationError.Operation, operationError.StatusCode, describeCause(operationError.Cause))
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, describeCause(operationError.Cause))
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client that authenticates every request with the credentials.
func NewClient(executor GitHubCommandExecutor, credentials Credentials) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	credentials.Token = strings.TrimSpace(credentials.Token)
	credentials.Host = strings.TrimSpace(credentials.Host)
	if len(credentials.Host) == 0 {
		credentials.Host = defaultHostConstant
	}
	return &Client{executor: executor, credentials: credentials}, nil
}

// ResolveAuthenticatedUser returns the account that owns the token.
func (client *Client) ResolveAuthenticatedUser(executionContext context.Context) (Account, error) {
	if len(client.credentials.Token) == 0 {
		return Account{}, InvalidInputError{FieldName: tokenFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var response accountResponse
	if requestError := client.request(executionContext, resolveUserOperationNameConstant, userEndpointConstant, false, &response); requestError != nil {
		return Account{}, requestError
	}
	if len(strings.TrimSpace(response.Login)) == 0 {
		return Account{}, ResponseDecodingError{Operation: resolveUserOperationNameConstant, Cause: errors.New(missingLoginMessageConstant)}
	}
	return response.toAccount(), nil
}

// ResolveOrganization looks up an organization by name.
func (client *Client) ResolveOrganization(executionContext context.Context, organization string) (Account, error) {
	organizationName := strings.TrimSpace(organization)
	if len(organizationName) == 0 {
		return Account{}, InvalidInputError{FieldName: organizationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var response accountResponse
	endpoint := fmt.Sprintf(organizationEndpointTemplateConstant, organizationName)
	if requestError := client.request(executionContext, resolveOrganizationOperationNameConstant, endpoint, false, &response); requestError != nil {
		return Account{}, requestError
	}
	if len(strings.TrimSpace(response.Login)) == 0 {
		return Account{}, ResponseDecodingError{Operation: resolveOrganizationOperationNameConstant, Cause: errors.New(missingLoginMessageConstant)}
	}
	return response.toAccount(), nil
}

// ResolveRepository looks up a repository owned by the given account.
func (client *Client) ResolveRepository(executionContext context.Context, owner string, repository string) (Repository, error) {
	ownerName, repositoryName, validationError := validateRepositoryInputs(owner, repository)
	if validationError != nil {
		return Repository{}, validationError
	}

	var response repositoryResponse
	endpoint := fmt.Sprintf(repositoryEndpointTemplateConstant, ownerName, repositoryName)
	if requestError := client.request(executionContext, resolveRepositoryOperationNameConstant, endpoint, false, &response); requestError != nil {
		return Repository{}, requestError
	}
	return response.toRepository(), nil
}

// CreateFork requests a fork of the repository under the authenticated account. GitHub answers
// with the existing fork when one is already present.
func (client *Client) CreateFork(executionContext context.Context, owner string, repository string) (Repository, error) {
	ownerName, repositoryName, validationError := validateRepositoryInputs(owner, repository)
	if validationError != nil {
		return Repository{}, validationError
	}

	var response repositoryResponse
	endpoint := fmt.Sprintf(forksEndpointTemplateConstant, ownerName, repositoryName)
	if requestError := client.request(executionContext, createForkOperationNameConstant, endpoint, true, &response); requestError != nil {
		return Repository{}, requestError
	}
	return response.toRepository(), nil
}

func (client *Client) request(executionContext context.Context, operation OperationName, endpoint string, mutate bool, target any) error {
	arguments := []string{apiSubcommandConstant, endpoint}
	if mutate {
		arguments = append(arguments, methodFlagConstant, httpMethodPostConstant)
	}
	if client.credentials.Host != defaultHostConstant {
		arguments = append(arguments, hostnameFlagConstant, client.credentials.Host)
	}

	commandDetails := execshell.CommandDetails{
		Arguments:            arguments,
		EnvironmentVariables: client.environment(),
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: operation, StatusCode: statusCodeFromError(executionError), Cause: executionError}
	}

	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), target); decodingError != nil {
		return ResponseDecodingError{Operation: operation, Cause: decodingError}
	}
	return nil
}

func (client *Client) environment() map[string]string {
	environment := map[string]string{promptDisabledEnvironmentConstant: promptDisabledValueConstant}
	if len(client.credentials.Token) == 0 {
		return environment
	}
	if client.credentials.Host == defaultHostConstant {
		environment[tokenEnvironmentVariableConstant] = client.credentials.Token
	} else {
		environment[enterpriseTokenEnvironmentConstant] = client.credentials.Token
	}
	return environment
}

func validateRepositoryInputs(owner string, repository string) (string, string, error) {
	ownerName := strings.TrimSpace(owner)
	if len(ownerName) == 0 {
		return "", "", InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	repositoryName := strings.TrimSpace(repository)
	if len(repositoryName) == 0 {
		return "", "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return ownerName, repositoryName, nil
}

type accountResponse struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

func (response accountResponse) toAccount() Account {
	return Account{Login: response.Login, Type: response.Type}
}

type repositoryResponse struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Fork          bool   `json:"fork"`
	Owner         struct {
		Login string `json:"login"`
	} `json:"owner"`
}

func (response repositoryResponse) toRepository() Repository {
	return Repository{
		Name:          response.Name,
		FullName:      response.FullName,
		OwnerLogin:    response.Owner.Login,
		DefaultBranch: response.DefaultBranch,
		Fork:          response.Fork,
	}
}
