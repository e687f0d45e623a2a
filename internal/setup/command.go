package setup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gareth/internal/catalog"
	"github.com/temirov/gareth/internal/githubauth"
	"github.com/temirov/gareth/internal/githubcli"
	"github.com/temirov/gareth/internal/gitrepo"
	"github.com/temirov/gareth/internal/repos/dependencies"
	"github.com/temirov/gareth/internal/repos/shared"
	"github.com/temirov/gareth/internal/setup/create"
	"github.com/temirov/gareth/internal/setup/credentials"
	"github.com/temirov/gareth/internal/setup/update"
	"github.com/temirov/gareth/internal/utils"
	flagutils "github.com/temirov/gareth/internal/utils/flags"
	"github.com/temirov/gareth/internal/workspace"
)

const (
	commandUseConstant                = "gareth"
	commandShortDescriptionConstant   = "Create or refresh a GrimoireLab development workspace"
	commandLongDescriptionConstant    = "gareth forks every catalog repository under the authenticated GitHub account, clones the forks into the source directory and registers the original repository as the upstream remote. With --update it rebases every existing clone onto its upstream mainline."
	tokenFlagNameConstant             = "token"
	tokenFlagShorthandConstant        = "t"
	tokenFlagUsageConstant            = "GitHub token (falls back to GH_TOKEN, GITHUB_TOKEN, GITHUB_API_TOKEN)"
	createFlagNameConstant            = "create"
	createFlagUsageConstant           = "Create the workspace: fork, clone and add the upstream remote (default)"
	updateFlagNameConstant            = "update"
	updateFlagUsageConstant           = "Update the workspace: checkout, fetch and rebase every clone"
	catalogFlagNameConstant           = "catalog"
	catalogFlagUsageConstant          = "YAML file listing the repositories, overriding the configured catalog"
	hostFlagNameConstant              = "host"
	hostFlagUsageConstant             = "Git host serving the repositories"
	protocolFlagNameConstant          = "protocol"
	protocolFlagUsageConstant         = "Protocol used for clone and upstream URLs"
	strictFlagNameConstant            = "strict"
	strictFlagUsageConstant           = "Exit with an error when any repository failed"
	sourceFlagUsageConstant           = "Directory holding the repository clones (default \"sources\")"
	tokenRequiredMessageConstant      = "a GitHub token is required to create the workspace; supply --token"
	strictFailureTemplateConstant     = "%d of %d repositories failed"
	catalogLoadErrorTemplateConstant  = "unable to load repository catalog: %w"
	authenticatedTemplateConstant     = "AUTHENTICATED: %s\n"
	summaryTemplateConstant           = "SUMMARY: %d succeeded, %d failed\n"
	runStartedLogMessageConstant      = "workspace run started"
	runCompletedLogMessageConstant    = "workspace run completed"
	logFieldModeConstant              = "mode"
	logFieldTokenSourceConstant       = "token_source"
	logFieldRepositoryCountConstant   = "repository_count"
	logFieldSourceDirectoryConstant   = "source_directory"
	logFieldConfigurationFileConstant = "config_file"
	logFieldSucceededConstant         = "succeeded"
	logFieldFailedConstant            = "failed"
	logFieldDryRunConstant            = "dry_run"
	modeCreateConstant                = "create"
	modeUpdateConstant                = "update"
)

// ErrTokenRequired indicates create mode was requested without any token.
var ErrTokenRequired = errors.New(tokenRequiredMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// Prompter asks yes/no questions and collects free-form answers.
type Prompter interface {
	shared.ConfirmationPrompter
	shared.ValuePrompter
}

// PrompterFactory creates prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) Prompter

// TerminalDetectorFactory creates terminal detectors scoped to a Cobra command.
type TerminalDetectorFactory func(*cobra.Command) shared.TerminalDetector

// CommandBuilder assembles the workspace command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	GitHubClient                 shared.GitHubClient
	FileSystem                   shared.FileSystem
	PrompterFactory              PrompterFactory
	TerminalDetectorFactory      TerminalDetectorFactory
	EnvironmentLookup            githubauth.EnvironmentLookup
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the workspace command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	flagSet := command.Flags()
	flagSet.StringP(tokenFlagNameConstant, tokenFlagShorthandConstant, "", tokenFlagUsageConstant)
	flagutils.BindSourceFlags(command, flagutils.SourceFlagValues{}, flagutils.SourceFlagDefinition{
		Name:      flagutils.SourceFlagName,
		Shorthand: flagutils.SourceFlagShorthand,
		Usage:     sourceFlagUsageConstant,
		Enabled:   true,
	})
	flagSet.Bool(createFlagNameConstant, false, createFlagUsageConstant)
	flagSet.Bool(updateFlagNameConstant, false, updateFlagUsageConstant)
	command.MarkFlagsMutuallyExclusive(createFlagNameConstant, updateFlagNameConstant)
	flagSet.String(catalogFlagNameConstant, "", catalogFlagUsageConstant)
	flagutils.BindBranchFlags(command, flagutils.BranchFlagValues{}, flagutils.BranchFlagDefinition{
		Name:    flagutils.BranchFlagName,
		Usage:   flagutils.BranchFlagUsage,
		Enabled: true,
	})
	flagSet.String(hostFlagNameConstant, "", hostFlagUsageConstant)
	flagSet.String(protocolFlagNameConstant, "", flagutils.FormatChoiceUsage(
		string(gitrepo.RemoteProtocolHTTPS),
		[]string{string(gitrepo.RemoteProtocolHTTPS), string(gitrepo.RemoteProtocolSSH)},
		protocolFlagUsageConstant,
	))
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.DefaultExecutionFlagDefinitions())
	flagutils.AddToggleFlag(flagSet, nil, strictFlagNameConstant, "", false, strictFlagUsageConstant)

	return command, nil
}

type runOptions struct {
	update             bool
	token              githubauth.Token
	source             string
	sourceExplicit     bool
	catalogPath        string
	host               string
	protocol           gitrepo.RemoteProtocol
	branch             string
	upstreamRemote     string
	strict             bool
	executionMode      shared.ExecutionMode
	confirmationPolicy shared.ConfirmationPolicy
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options, optionsError := builder.resolveOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)

	repositoryCatalog, catalogError := resolveCatalog(fileSystem, options.catalogPath, configuration.Repositories)
	if catalogError != nil {
		return fmt.Errorf(catalogLoadErrorTemplateConstant, catalogError)
	}

	logger := resolveLogger(builder.LoggerProvider)
	configurationSource, _ := utils.NewCommandContextAccessor().ConfigurationSource(command.Context())
	logger.Info(runStartedLogMessageConstant,
		zap.String(logFieldModeConstant, modeName(options.update)),
		zap.String(logFieldTokenSourceConstant, options.token.Source),
		zap.Int(logFieldRepositoryCountConstant, repositoryCatalog.Len()),
		zap.Bool(logFieldDryRunConstant, options.executionMode.IsDryRun()),
		zap.String(logFieldConfigurationFileConstant, configurationSource.Describe()))

	prompter := resolvePrompter(builder.PrompterFactory, command)
	workspaceResolver, resolverError := workspace.NewResolver(workspace.Dependencies{
		FileSystem:       fileSystem,
		Confirmer:        prompter,
		ValuePrompter:    prompter,
		TerminalDetector: resolveTerminalDetector(builder.TerminalDetectorFactory, command),
		Output:           command.OutOrStdout(),
	})
	if resolverError != nil {
		return resolverError
	}

	layout, layoutError := workspaceResolver.Resolve(workspace.ResolveOptions{
		SourceDirectory:    options.source,
		SourceExplicit:     options.sourceExplicit,
		ConfirmationPolicy: options.confirmationPolicy,
	})
	if layoutError != nil {
		return layoutError
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLogging())
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.GitRepositoryManager, gitExecutor)
	if managerError != nil {
		return managerError
	}

	reporter := shared.NewWriterReporter(command.OutOrStdout())

	var succeeded, failed int
	var workflowError error
	if options.update {
		succeeded, failed, workflowError = builder.runUpdate(command, fileSystem, layout, repositoryCatalog, options, repositoryManager, reporter, logger)
	} else {
		succeeded, failed, workflowError = builder.runCreate(command, layout, repositoryCatalog, options, gitExecutor, repositoryManager, reporter, logger)
	}
	if workflowError != nil {
		return workflowError
	}

	reporter.Printf(summaryTemplateConstant, succeeded, failed)
	logger.Info(runCompletedLogMessageConstant,
		zap.String(logFieldModeConstant, modeName(options.update)),
		zap.String(logFieldSourceDirectoryConstant, layout.SourceDirectory),
		zap.Int(logFieldSucceededConstant, succeeded),
		zap.Int(logFieldFailedConstant, failed))

	if options.strict && failed > 0 {
		return fmt.Errorf(strictFailureTemplateConstant, failed, succeeded+failed)
	}
	return nil
}

func (builder *CommandBuilder) runCreate(command *cobra.Command, layout workspace.Layout, repositoryCatalog catalog.Catalog, options runOptions, gitExecutor shared.GitExecutor, repositoryManager shared.GitRepositoryManager, reporter shared.Reporter, logger *zap.Logger) (int, int, error) {
	client, clientError := dependencies.ResolveGitHubClient(builder.GitHubClient, gitExecutor, githubcli.Credentials{Token: options.token.Value, Host: options.host})
	if clientError != nil {
		return 0, 0, clientError
	}

	validator, validatorError := credentials.NewValidator(client, options.token.Value)
	if validatorError != nil {
		return 0, 0, validatorError
	}

	session, validationError := validator.Validate(command.Context())
	if validationError != nil {
		return 0, 0, validationError
	}
	reporter.Printf(authenticatedTemplateConstant, session.Login)

	service, serviceError := create.NewService(create.Dependencies{
		RepositoryManager: repositoryManager,
		Reporter:          reporter,
		Logger:            logger,
	})
	if serviceError != nil {
		return 0, 0, serviceError
	}

	result, runError := service.Run(command.Context(), session, layout, repositoryCatalog, create.Options{
		Host:               options.host,
		Branch:             options.branch,
		Protocol:           options.protocol,
		UpstreamRemoteName: options.upstreamRemote,
		ExecutionMode:      options.executionMode,
	})
	if runError != nil {
		return 0, 0, runError
	}
	return result.Succeeded(), result.Failed(), nil
}

func (builder *CommandBuilder) runUpdate(command *cobra.Command, fileSystem shared.FileSystem, layout workspace.Layout, repositoryCatalog catalog.Catalog, options runOptions, repositoryManager shared.GitRepositoryManager, reporter shared.Reporter, logger *zap.Logger) (int, int, error) {
	service, serviceError := update.NewService(update.Dependencies{
		FileSystem:        fileSystem,
		RepositoryManager: repositoryManager,
		Reporter:          reporter,
		Logger:            logger,
	})
	if serviceError != nil {
		return 0, 0, serviceError
	}

	result := service.Run(command.Context(), layout, repositoryCatalog, update.Options{
		Branch:             options.branch,
		UpstreamRemoteName: options.upstreamRemote,
		ExecutionMode:      options.executionMode,
	})
	return result.Succeeded(), result.Failed(), nil
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command, configuration CommandConfiguration) (runOptions, error) {
	flagSet := command.Flags()
	updateMode, _ := flagSet.GetBool(updateFlagNameConstant)

	options := runOptions{
		update:         updateMode,
		source:         configuration.Source,
		host:           configuration.Host,
		branch:         configuration.Branch,
		upstreamRemote: configuration.UpstreamRemote,
		strict:         configuration.Strict,
	}

	if !updateMode {
		explicitToken, _ := flagSet.GetString(tokenFlagNameConstant)
		token, found := githubauth.NewResolver(builder.EnvironmentLookup).Resolve(explicitToken)
		if !found {
			_ = command.Help()
			return runOptions{}, ErrTokenRequired
		}
		options.token = token
	}

	if sourceValue, _ := flagSet.GetString(flagutils.SourceFlagName); flagSet.Changed(flagutils.SourceFlagName) && len(strings.TrimSpace(sourceValue)) > 0 {
		options.source = sourceValue
		options.sourceExplicit = true
	}
	options.catalogPath, _ = flagSet.GetString(catalogFlagNameConstant)
	if hostValue, _ := flagSet.GetString(hostFlagNameConstant); len(strings.TrimSpace(hostValue)) > 0 {
		options.host = strings.TrimSpace(hostValue)
	}
	if branchValue, _ := flagSet.GetString(flagutils.BranchFlagName); len(strings.TrimSpace(branchValue)) > 0 {
		options.branch = strings.TrimSpace(branchValue)
	}
	if flagSet.Changed(strictFlagNameConstant) {
		options.strict, _ = flagSet.GetBool(strictFlagNameConstant)
	}

	protocolValue := configuration.Protocol
	if flagValue, _ := flagSet.GetString(protocolFlagNameConstant); len(strings.TrimSpace(flagValue)) > 0 {
		protocolValue = flagValue
	}
	protocol, protocolError := gitrepo.ParseRemoteProtocol(protocolValue)
	if protocolError != nil {
		return runOptions{}, protocolError
	}
	options.protocol = protocol

	dryRun, _ := flagSet.GetBool(flagutils.DryRunFlagName)
	assumeYes, _ := flagSet.GetBool(flagutils.AssumeYesFlagName)
	options.executionMode = shared.ExecutionModeFromBool(dryRun)
	options.confirmationPolicy = shared.ConfirmationPolicyFromBool(assumeYes)

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) humanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func resolveCatalog(reader catalog.FileReader, catalogPath string, configured []catalog.RepositoryRef) (catalog.Catalog, error) {
	if trimmedPath := strings.TrimSpace(catalogPath); len(trimmedPath) > 0 {
		loader, loaderError := catalog.NewLoader(reader)
		if loaderError != nil {
			return catalog.Catalog{}, loaderError
		}
		return loader.LoadFile(trimmedPath)
	}

	repositoryCatalog := catalog.New(configured)
	if validationError := repositoryCatalog.Validate(); validationError != nil {
		return catalog.Catalog{}, validationError
	}
	return repositoryCatalog, nil
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolvePrompter(factory PrompterFactory, command *cobra.Command) Prompter {
	if factory != nil {
		if prompter := factory(command); prompter != nil {
			return prompter
		}
	}
	return workspace.NewIOPrompter(command.InOrStdin(), command.OutOrStdout())
}

func resolveTerminalDetector(factory TerminalDetectorFactory, command *cobra.Command) shared.TerminalDetector {
	if factory != nil {
		if detector := factory(command); detector != nil {
			return detector
		}
	}
	return workspace.NewTerminalDetector(command.InOrStdin())
}

func modeName(updateMode bool) string {
	if updateMode {
		return modeUpdateConstant
	}
	return modeCreateConstant
}
