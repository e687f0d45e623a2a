package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gareth/internal/catalog"
	repoerrors "github.com/temirov/gareth/internal/repos/errors"
	"github.com/temirov/gareth/internal/repos/shared"
	"github.com/temirov/gareth/internal/workspace"
)

const (
	fileSystemMissingMessageConstant        = "file system not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	updatedTemplateConstant                 = "UPDATED: %s (%s)\n"
	incompleteTemplateConstant              = "UPDATE-INCOMPLETE: %s [%s] (%s)\n"
	skippedTemplateConstant                 = "UPDATE-SKIPPED: %s [%s] %s\n"
	plannedTemplateConstant                 = "PLAN-UPDATE: %s checkout %s, fetch %s, rebase onto %s/%s\n"
	stepSeparatorConstant                   = ", "
	cloneMissingMessageConstant             = "no local clone at %s; run with --create first"
	cloneNotDirectoryMessageConstant        = "%s is not a directory; run with --create first"
	rebaseFailedMessageConstant             = "rebase onto %s/%s failed in %s; resolve it manually"
	clonePathRejectedMessageConstant        = "%s does not map to a directory inside the source directory"
	stepFailedLogMessageConstant            = "refresh step failed"
	cloneMissingLogMessageConstant          = "local clone missing"
	logFieldRepositoryConstant              = "repository"
	logFieldPathConstant                    = "path"
	logFieldStepConstant                    = "step"
)

var (
	// ErrFileSystemNotConfigured indicates the file system dependency was missing.
	ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)
	// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
	ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)
)

// Dependencies enumerates external collaborators required by the update workflow.
type Dependencies struct {
	FileSystem        shared.FileSystem
	RepositoryManager shared.GitRepositoryManager
	Reporter          shared.Reporter
	Logger            *zap.Logger
}

// Options configures an update run.
type Options struct {
	Branch             string
	UpstreamRemoteName string
	ExecutionMode      shared.ExecutionMode
}

// ItemResult records what happened to one catalog entry.
type ItemResult struct {
	Repository catalog.RepositoryRef
	ClonePath  string
	State      SyncState
	Steps      []StepOutcome
	Planned    bool
	Error      error
}

// Complete reports whether the clone was planned or every step succeeded.
func (item ItemResult) Complete() bool {
	if item.Planned {
		return true
	}
	if item.State == StateMissing || len(item.Steps) == 0 {
		return false
	}
	for _, outcome := range item.Steps {
		if !outcome.Succeeded {
			return false
		}
	}
	return true
}

// Result aggregates per-entry outcomes in catalog order.
type Result struct {
	Items []ItemResult
}

// Succeeded counts entries that were fully refreshed or planned.
func (result Result) Succeeded() int {
	count := 0
	for _, item := range result.Items {
		if item.Complete() {
			count++
		}
	}
	return count
}

// Failed counts skipped and incomplete entries.
func (result Result) Failed() int {
	return len(result.Items) - result.Succeeded()
}

// Service executes the update workflow.
type Service struct {
	fileSystem        shared.FileSystem
	repositoryManager shared.GitRepositoryManager
	reporter          shared.Reporter
	logger            *zap.Logger
}

// NewService constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
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
	return &Service{
		fileSystem:        dependencies.FileSystem,
		repositoryManager: dependencies.RepositoryManager,
		reporter:          reporter,
		logger:            logger,
	}, nil
}

// Run refreshes every catalog entry in order. It never contacts the host API.
func (service *Service) Run(executionContext context.Context, layout workspace.Layout, entries catalog.Catalog, options Options) Result {
	options = normalizeOptions(options)
	result := Result{Items: make([]ItemResult, 0, entries.Len())}
	for _, reference := range entries.Entries() {
		item := service.processRepository(executionContext, layout, reference, options)
		service.report(item, options)
		result.Items = append(result.Items, item)
	}
	return result
}

func (service *Service) processRepository(executionContext context.Context, layout workspace.Layout, reference catalog.RepositoryRef, options Options) ItemResult {
	clonePath, clonePathError := layout.ClonePath(reference)
	item := ItemResult{Repository: reference, ClonePath: clonePath, State: StateMissing}
	if clonePathError != nil {
		message := fmt.Sprintf(clonePathRejectedMessageConstant, reference)
		item.Error = repoerrors.New(repoerrors.CodeDirectoryUnavailable, reference.String(), message, clonePathError)
		return item
	}

	if locateError := service.locate(item.ClonePath); locateError != nil {
		item.Error = locateError
		return item
	}
	item.State = StateLocated

	if options.ExecutionMode.IsDryRun() {
		item.Planned = true
		return item
	}

	steps := []struct {
		name    StepName
		execute func() error
	}{
		{name: StepCheckout, execute: func() error {
			return service.repositoryManager.CheckoutBranch(executionContext, item.ClonePath, options.Branch)
		}},
		{name: StepFetch, execute: func() error {
			return service.repositoryManager.FetchRemote(executionContext, item.ClonePath, options.UpstreamRemoteName)
		}},
		{name: StepRebase, execute: func() error {
			return service.repositoryManager.RebaseOnto(executionContext, item.ClonePath, options.UpstreamRemoteName, options.Branch)
		}},
	}

	stepErrors := make([]error, 0, len(steps))
	for _, step := range steps {
		stepError := step.execute()
		outcome := StepOutcome{Step: step.name, Succeeded: stepError == nil, Error: stepError}
		item.Steps = append(item.Steps, outcome)
		item.State = advance(item.State, outcome)
		if stepError == nil {
			continue
		}
		service.logger.Warn(stepFailedLogMessageConstant,
			zap.String(logFieldRepositoryConstant, reference.String()),
			zap.String(logFieldStepConstant, string(step.name)),
			zap.Error(stepError))
		if step.name == StepRebase {
			message := fmt.Sprintf(rebaseFailedMessageConstant, options.UpstreamRemoteName, options.Branch, item.ClonePath)
			stepError = repoerrors.New(repoerrors.CodeRebaseFailed, reference.String(), message, stepError)
		}
		stepErrors = append(stepErrors, stepError)
	}
	item.Error = errors.Join(stepErrors...)
	return item
}

func (service *Service) locate(clonePath string) error {
	subject := clonePath
	info, statError := service.fileSystem.Stat(clonePath)
	if statError != nil {
		return repoerrors.New(repoerrors.CodeLocalCloneMissing, subject, fmt.Sprintf(cloneMissingMessageConstant, clonePath), statError)
	}
	if !info.IsDir() {
		return repoerrors.New(repoerrors.CodeLocalCloneMissing, subject, fmt.Sprintf(cloneNotDirectoryMessageConstant, clonePath), nil)
	}
	return nil
}

func (service *Service) report(item ItemResult, options Options) {
	switch {
	case item.State == StateMissing:
		service.logger.Info(cloneMissingLogMessageConstant,
			zap.String(logFieldRepositoryConstant, item.Repository.String()),
			zap.String(logFieldPathConstant, item.ClonePath))
		code, classified := repoerrors.CodeOf(item.Error)
		if !classified {
			code = repoerrors.CodeLocalCloneMissing
		}
		var operationError repoerrors.OperationError
		message := item.Error.Error()
		if errors.As(item.Error, &operationError) {
			message = operationError.Message
		}
		service.reporter.Printf(skippedTemplateConstant, item.Repository, code, message)
	case item.Planned:
		service.reporter.Printf(plannedTemplateConstant, item.ClonePath, options.Branch, options.UpstreamRemoteName, options.UpstreamRemoteName, options.Branch)
	case item.Complete():
		service.reporter.Printf(updatedTemplateConstant, item.ClonePath, describeSteps(item.Steps))
	default:
		service.reporter.Printf(incompleteTemplateConstant, item.ClonePath, item.State, describeSteps(item.Steps))
	}
}

func describeSteps(steps []StepOutcome) string {
	descriptions := make([]string, 0, len(steps))
	for _, outcome := range steps {
		descriptions = append(descriptions, outcome.describe())
	}
	return strings.Join(descriptions, stepSeparatorConstant)
}

func normalizeOptions(options Options) Options {
	if branch := strings.TrimSpace(options.Branch); len(branch) > 0 {
		options.Branch = branch
	} else {
		options.Branch = shared.DefaultMainlineBranchConstant
	}
	if remote := strings.TrimSpace(options.UpstreamRemoteName); len(remote) > 0 {
		options.UpstreamRemoteName = remote
	} else {
		options.UpstreamRemoteName = shared.UpstreamRemoteNameConstant
	}
	return options
}
