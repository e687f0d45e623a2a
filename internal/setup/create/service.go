package create

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gareth/internal/catalog"
	"github.com/temirov/gareth/internal/githubcli"
	"github.com/temirov/gareth/internal/gitrepo"
	repoerrors "github.com/temirov/gareth/internal/repos/errors"
	"github.com/temirov/gareth/internal/repos/shared"
	"github.com/temirov/gareth/internal/setup/credentials"
	"github.com/temirov/gareth/internal/workspace"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	sessionIncompleteMessageConstant        = "authenticated session is incomplete"
	sessionClientMissingMessageConstant     = "no GitHub client"
	sessionLoginMissingMessageConstant      = "no login"
	sessionErrorTemplateConstant            = "%w: %s"
	createdTemplateConstant                 = "CREATED: %s -> %s (origin %s, upstream %s)\n"
	plannedTemplateConstant                 = "PLAN-CREATE: %s fork as %s, clone %s into %s, upstream %s\n"
	failedTemplateConstant                  = "CREATE-FAILED: %s [%s] %s\n"
	organizationLookupMessageConstant       = "unable to resolve organization %s"
	repositoryLookupMessageConstant         = "unable to resolve repository %s"
	forkFailedMessageConstant               = "unable to fork %s"
	forkForbiddenMessageConstant            = "the token is not allowed to fork %s; grant it the repo (or public_repo) scope"
	remoteFormatMessageConstant             = "unable to build clone URLs"
	cloneFailedMessageConstant              = "unable to clone %s into %s"
	remoteSetupFailedMessageConstant        = "unable to add %s remote %s; the clone was kept at %s"
	clonePathRejectedMessageConstant        = "%s does not map to a directory inside the source directory"
	branchMismatchLogMessageConstant        = "upstream default branch differs from configured branch"
	duplicateForkLogMessageConstant         = "fork already exists"
	itemFailedLogMessageConstant            = "repository setup failed"
	logFieldRepositoryConstant              = "repository"
	logFieldOwnerConstant                   = "owner"
	logFieldCodeConstant                    = "code"
	logFieldDefaultBranchConstant           = "default_branch"
	logFieldBranchConstant                  = "branch"
)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrSessionIncomplete indicates Run received a session without a client or login.
var ErrSessionIncomplete = errors.New(sessionIncompleteMessageConstant)

// Dependencies enumerates external collaborators required by the create workflow.
type Dependencies struct {
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
	Logger            *zap.Logger
}

// Options configures a create run.
type Options struct {
	Host               string
	Branch             string
	Protocol           gitrepo.RemoteProtocol
	UpstreamRemoteName string
	ExecutionMode      shared.ExecutionMode
}

// Status summarizes the outcome for one catalog entry.
type Status string

// Item statuses.
const (
	StatusCreated Status = Status("created")
	StatusPlanned Status = Status("planned")
	StatusFailed  Status = Status("failed")
)

// ItemResult records what happened to one catalog entry.
type ItemResult struct {
	Repository            catalog.RepositoryRef
	ClonePath             string
	ForkURL               string
	UpstreamURL           string
	UpstreamDefaultBranch string
	ForkExisted           bool
	Status                Status
	Error                 error
}

// Result aggregates per-entry outcomes in catalog order.
type Result struct {
	Items []ItemResult
}

// Succeeded counts entries that were created or planned.
func (result Result) Succeeded() int {
	count := 0
	for _, item := range result.Items {
		if item.Status != StatusFailed {
			count++
		}
	}
	return count
}

// Failed counts entries that failed.
func (result Result) Failed() int {
	return len(result.Items) - result.Succeeded()
}

// Service executes the create workflow.
type Service struct {
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
	logger            *zap.Logger
}

// NewService constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repositoryManager: dependencies.RepositoryManager, reporter: reporter, logger: logger}, nil
}

// Run processes every catalog entry in order. Per-entry failures are captured in the result;
// only an unusable session is returned as an error.
func (service *Service) Run(executionContext context.Context, session credentials.Session, layout workspace.Layout, entries catalog.Catalog, options Options) (Result, error) {
	if session.Client == nil {
		return Result{}, fmt.Errorf(sessionErrorTemplateConstant, ErrSessionIncomplete, sessionClientMissingMessageConstant)
	}
	if len(strings.TrimSpace(session.Login)) == 0 {
		return Result{}, fmt.Errorf(sessionErrorTemplateConstant, ErrSessionIncomplete, sessionLoginMissingMessageConstant)
	}

	options = normalizeOptions(options)
	result := Result{Items: make([]ItemResult, 0, entries.Len())}
	for _, reference := range entries.Entries() {
		item := service.processRepository(executionContext, session, layout, reference, options)
		service.report(session, item)
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func (service *Service) processRepository(executionContext context.Context, session credentials.Session, layout workspace.Layout, reference catalog.RepositoryRef, options Options) ItemResult {
	subject := reference.String()
	clonePath, clonePathError := layout.ClonePath(reference)
	item := ItemResult{Repository: reference, ClonePath: clonePath}
	if clonePathError != nil {
		message := fmt.Sprintf(clonePathRejectedMessageConstant, subject)
		return failed(item, repoerrors.New(repoerrors.CodeDirectoryUnavailable, subject, message, clonePathError))
	}

	organization, organizationError := session.Client.ResolveOrganization(executionContext, reference.Organization)
	if organizationError != nil {
		return failed(item, classifyLookupError(subject, fmt.Sprintf(organizationLookupMessageConstant, reference.Organization), organizationError))
	}

	upstream, repositoryError := session.Client.ResolveRepository(executionContext, organization.Login, reference.Name)
	if repositoryError != nil {
		return failed(item, classifyLookupError(subject, fmt.Sprintf(repositoryLookupMessageConstant, subject), repositoryError))
	}
	upstreamOwner := firstNonEmpty(upstream.OwnerLogin, organization.Login)
	upstreamName := firstNonEmpty(upstream.Name, reference.Name)
	item.UpstreamDefaultBranch = strings.TrimSpace(upstream.DefaultBranch)
	if len(item.UpstreamDefaultBranch) > 0 && len(options.Branch) > 0 && item.UpstreamDefaultBranch != options.Branch {
		service.logger.Warn(branchMismatchLogMessageConstant,
			zap.String(logFieldRepositoryConstant, subject),
			zap.String(logFieldDefaultBranchConstant, item.UpstreamDefaultBranch),
			zap.String(logFieldBranchConstant, options.Branch))
	}

	forkURL, upstreamURL, formatError := buildRemoteURLs(options, session.Login, upstreamName, upstreamOwner, upstreamName)
	if formatError != nil {
		return failed(item, repoerrors.New(repoerrors.CodeHostUnavailable, subject, remoteFormatMessageConstant, formatError))
	}
	item.ForkURL = forkURL
	item.UpstreamURL = upstreamURL

	if options.ExecutionMode.IsDryRun() {
		item.Status = StatusPlanned
		return item
	}

	fork, forkError := session.Client.CreateFork(executionContext, upstreamOwner, upstreamName)
	switch {
	case forkError == nil:
		if len(strings.TrimSpace(fork.Name)) > 0 && (fork.Name != upstreamName || !strings.EqualFold(fork.OwnerLogin, session.Login)) {
			forkURL, _, formatError = buildRemoteURLs(options, firstNonEmpty(fork.OwnerLogin, session.Login), fork.Name, upstreamOwner, upstreamName)
			if formatError != nil {
				return failed(item, repoerrors.New(repoerrors.CodeHostUnavailable, subject, remoteFormatMessageConstant, formatError))
			}
			item.ForkURL = forkURL
		}
	case githubcli.IsAlreadyExists(forkError):
		item.ForkExisted = true
		service.logger.Info(duplicateForkLogMessageConstant,
			zap.String(logFieldRepositoryConstant, subject),
			zap.String(logFieldOwnerConstant, session.Login))
	default:
		return failed(item, classifyForkError(subject, forkError))
	}

	cloneError := service.repositoryManager.CloneRepository(executionContext, gitrepo.CloneOptions{
		RemoteURL:       item.ForkURL,
		ParentDirectory: layout.SourceDirectory,
		DirectoryName:   reference.Name,
	})
	if cloneError != nil {
		message := fmt.Sprintf(cloneFailedMessageConstant, item.ForkURL, item.ClonePath)
		return failed(item, repoerrors.New(repoerrors.CodeCloneFailed, subject, message, cloneError))
	}

	remoteError := service.repositoryManager.AddRemote(executionContext, item.ClonePath, options.UpstreamRemoteName, upstreamURL)
	if remoteError != nil {
		message := fmt.Sprintf(remoteSetupFailedMessageConstant, options.UpstreamRemoteName, upstreamURL, item.ClonePath)
		return failed(item, repoerrors.New(repoerrors.CodeRemoteSetupFailed, subject, message, remoteError))
	}

	item.Status = StatusCreated
	return item
}

func (service *Service) report(session credentials.Session, item ItemResult) {
	switch item.Status {
	case StatusCreated:
		service.reporter.Printf(createdTemplateConstant, item.Repository, item.ClonePath, item.ForkURL, item.UpstreamURL)
	case StatusPlanned:
		service.reporter.Printf(plannedTemplateConstant, item.Repository, session.Login, item.ForkURL, item.ClonePath, item.UpstreamURL)
	default:
		code, message := describeFailure(item.Error)
		service.logger.Warn(itemFailedLogMessageConstant,
			zap.String(logFieldRepositoryConstant, item.Repository.String()),
			zap.String(logFieldCodeConstant, string(code)),
			zap.Error(item.Error))
		service.reporter.Printf(failedTemplateConstant, item.Repository, code, message)
	}
}

func normalizeOptions(options Options) Options {
	options.Host = firstNonEmpty(options.Host, shared.DefaultHostConstant)
	options.Branch = strings.TrimSpace(options.Branch)
	if len(options.Protocol) == 0 {
		options.Protocol = gitrepo.RemoteProtocolHTTPS
	}
	options.UpstreamRemoteName = firstNonEmpty(options.UpstreamRemoteName, shared.UpstreamRemoteNameConstant)
	return options
}

func buildRemoteURLs(options Options, forkOwner string, forkName string, upstreamOwner string, upstreamName string) (string, string, error) {
	forkURL, forkError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{Protocol: options.Protocol, Host: options.Host, Owner: forkOwner, Repository: forkName})
	if forkError != nil {
		return "", "", forkError
	}
	upstreamURL, upstreamError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{Protocol: options.Protocol, Host: options.Host, Owner: upstreamOwner, Repository: upstreamName})
	if upstreamError != nil {
		return "", "", upstreamError
	}
	return forkURL, upstreamURL, nil
}

func failed(item ItemResult, failure error) ItemResult {
	item.Status = StatusFailed
	item.Error = failure
	return item
}

func describeFailure(failure error) (repoerrors.Code, string) {
	var operationError repoerrors.OperationError
	if errors.As(failure, &operationError) {
		return operationError.Code, operationError.Describe()
	}
	return repoerrors.CodeHostUnavailable, failure.Error()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); len(trimmed) > 0 {
			return trimmed
		}
	}
	return ""
}
