package execshell

import (
	"fmt"
	"path/filepath"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitCloneSubcommandNameConstant     = "clone"
	gitRemoteSubcommandNameConstant    = "remote"
	gitRemoteAddSubcommandNameConstant = "add"
	gitCheckoutSubcommandNameConstant  = "checkout"
	gitFetchSubcommandNameConstant     = "fetch"
	gitRebaseSubcommandNameConstant    = "rebase"
	gitFetchAllRemotesLabelConstant    = "all remotes"
)

const (
	gitCloneStartTemplateConstant                    = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                  = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                  = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant         = "Unable to clone %s into %s: %s"
	gitRemoteAddStartTemplateConstant                = "Adding %s remote %s to %s"
	gitRemoteAddSuccessTemplateConstant              = "Added %s remote %s to %s"
	gitRemoteAddFailureTemplateConstant              = "Failed to add %s remote %s to %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplateConstant     = "Unable to add %s remote %s to %s: %s"
	gitCheckoutStartTemplateConstant                 = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant               = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant               = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant      = "Unable to switch %s to branch %s: %s"
	gitFetchStartTemplateConstant                    = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                  = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                  = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant         = "Unable to fetch from %s in %s: %s"
	gitRebaseStartTemplateConstant                   = "Rebasing %s onto %s"
	gitRebaseSuccessTemplateConstant                 = "Rebased %s onto %s"
	gitRebaseFailureTemplateConstant                 = "Failed to rebase %s onto %s (exit code %d%s)"
	gitRebaseExecutionFailureTemplateConstant        = "Unable to rebase %s onto %s: %s"
	githubUserLookupStartTemplateConstant            = "Resolving the authenticated GitHub account"
	githubUserLookupSuccessTemplateConstant          = "Resolved the authenticated GitHub account"
	githubUserLookupFailureTemplateConstant          = "Failed to resolve the authenticated GitHub account (exit code %d%s)"
	githubUserLookupExecutionFailureTemplateConstant = "Unable to resolve the authenticated GitHub account: %s"
	githubOrgLookupStartTemplateConstant             = "Looking up organization %s"
	githubOrgLookupSuccessTemplateConstant           = "Found organization %s"
	githubOrgLookupFailureTemplateConstant           = "Failed to look up organization %s (exit code %d%s)"
	githubOrgLookupExecutionFailureTemplateConstant  = "Unable to look up organization %s: %s"
	githubRepoLookupStartTemplateConstant            = "Looking up repository %s"
	githubRepoLookupSuccessTemplateConstant          = "Found repository %s"
	githubRepoLookupFailureTemplateConstant          = "Failed to look up repository %s (exit code %d%s)"
	githubRepoLookupExecutionFailureTemplateConstant = "Unable to look up repository %s: %s"
	githubForkStartTemplateConstant                  = "Forking %s"
	githubForkSuccessTemplateConstant                = "Forked %s"
	githubForkFailureTemplateConstant                = "Failed to fork %s (exit code %d%s)"
	githubForkExecutionFailureTemplateConstant       = "Unable to fork %s: %s"
)

const (
	githubAPICommandNameConstant         = "api"
	githubMethodFlagConstant             = "-X"
	githubUserEndpointConstant           = "user"
	githubOrganizationsPrefixConstant    = "orgs/"
	githubRepositoriesPrefixConstant     = "repos/"
	githubForksEndpointSuffixConstant    = "/forks"
	githubAPIMinimumArgumentsConstant    = 2
	gitRemoteAddMinimumArgumentsConstant = 4
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// ShouldReportStart reports whether a start message adds information. Read-only GitHub
// lookups are summarized by their completion message alone.
func (formatter CommandMessageFormatter) ShouldReportStart(command ShellCommand) bool {
	if command.Name != CommandGitHub {
		return true
	}
	return formatter.isGitHubMutation(command.Details.Arguments)
}

func (formatter CommandMessageFormatter) isGitHubMutation(arguments []string) bool {
	method := strings.ToUpper(findFlagValue(arguments, githubMethodFlagConstant))
	return len(method) > 0 && method != "GET"
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	exitCode := result.ExitCode
	standardError := formatter.formatStandardErrorSuffix(result.StandardError)
	failureDescription := formatter.describeFailure(failure)

	switch strings.TrimSpace(arguments[0]) {
	case gitCloneSubcommandNameConstant:
		positional := formatter.positionalArguments(arguments[1:])
		source := formatter.ensureValue(formatter.argumentAtIndex(positional, 0))
		destination := formatter.ensureValue(formatter.argumentAtIndex(positional, 1))
		if command.Details.WorkingDirectory != emptyStringConstant && destination != fallbackUnknownValueLabelConstant {
			destination = filepath.Join(workingDirectory, destination)
		}
		return formatter.selectTemplate(stage,
			fmt.Sprintf(gitCloneStartTemplateConstant, source, destination),
			fmt.Sprintf(gitCloneSuccessTemplateConstant, source, destination),
			fmt.Sprintf(gitCloneFailureTemplateConstant, source, destination, exitCode, standardError),
			fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, source, destination, failureDescription),
		)
	case gitRemoteSubcommandNameConstant:
		if len(arguments) < gitRemoteAddMinimumArgumentsConstant || strings.TrimSpace(arguments[1]) != gitRemoteAddSubcommandNameConstant {
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
		remoteName := formatter.ensureValue(arguments[2])
		remoteURL := formatter.ensureValue(arguments[3])
		return formatter.selectTemplate(stage,
			fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, remoteURL, workingDirectory),
			fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, remoteURL, workingDirectory),
			fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, remoteURL, workingDirectory, exitCode, standardError),
			fmt.Sprintf(gitRemoteAddExecutionFailureTemplateConstant, remoteName, remoteURL, workingDirectory, failureDescription),
		)
	case gitCheckoutSubcommandNameConstant:
		branchName := formatter.ensureValue(formatter.argumentAtIndex(formatter.positionalArguments(arguments[1:]), 0))
		return formatter.selectTemplate(stage,
			fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, branchName),
			fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, branchName),
			fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, branchName, exitCode, standardError),
			fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, branchName, failureDescription),
		)
	case gitFetchSubcommandNameConstant:
		remoteName := strings.TrimSpace(formatter.argumentAtIndex(formatter.positionalArguments(arguments[1:]), 0))
		if len(remoteName) == 0 {
			remoteName = gitFetchAllRemotesLabelConstant
		}
		return formatter.selectTemplate(stage,
			fmt.Sprintf(gitFetchStartTemplateConstant, remoteName, workingDirectory),
			fmt.Sprintf(gitFetchSuccessTemplateConstant, remoteName, workingDirectory),
			fmt.Sprintf(gitFetchFailureTemplateConstant, remoteName, workingDirectory, exitCode, standardError),
			fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, remoteName, workingDirectory, failureDescription),
		)
	case gitRebaseSubcommandNameConstant:
		upstreamReference := formatter.ensureValue(formatter.argumentAtIndex(formatter.positionalArguments(arguments[1:]), 0))
		return formatter.selectTemplate(stage,
			fmt.Sprintf(gitRebaseStartTemplateConstant, workingDirectory, upstreamReference),
			fmt.Sprintf(gitRebaseSuccessTemplateConstant, workingDirectory, upstreamReference),
			fmt.Sprintf(gitRebaseFailureTemplateConstant, workingDirectory, upstreamReference, exitCode, standardError),
			fmt.Sprintf(gitRebaseExecutionFailureTemplateConstant, workingDirectory, upstreamReference, failureDescription),
		)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < githubAPIMinimumArgumentsConstant || strings.TrimSpace(arguments[0]) != githubAPICommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	endpoint := strings.Trim(strings.TrimSpace(arguments[1]), "/")
	exitCode := result.ExitCode
	standardError := formatter.formatStandardErrorSuffix(result.StandardError)
	failureDescription := formatter.describeFailure(failure)

	switch {
	case endpoint == githubUserEndpointConstant:
		return formatter.selectTemplate(stage,
			githubUserLookupStartTemplateConstant,
			githubUserLookupSuccessTemplateConstant,
			fmt.Sprintf(githubUserLookupFailureTemplateConstant, exitCode, standardError),
			fmt.Sprintf(githubUserLookupExecutionFailureTemplateConstant, failureDescription),
		)
	case strings.HasPrefix(endpoint, githubOrganizationsPrefixConstant):
		organization := formatter.ensureValue(strings.TrimPrefix(endpoint, githubOrganizationsPrefixConstant))
		return formatter.selectTemplate(stage,
			fmt.Sprintf(githubOrgLookupStartTemplateConstant, organization),
			fmt.Sprintf(githubOrgLookupSuccessTemplateConstant, organization),
			fmt.Sprintf(githubOrgLookupFailureTemplateConstant, organization, exitCode, standardError),
			fmt.Sprintf(githubOrgLookupExecutionFailureTemplateConstant, organization, failureDescription),
		)
	case strings.HasPrefix(endpoint, githubRepositoriesPrefixConstant) && strings.HasSuffix(endpoint, githubForksEndpointSuffixConstant):
		repository := formatter.ensureValue(strings.TrimSuffix(strings.TrimPrefix(endpoint, githubRepositoriesPrefixConstant), githubForksEndpointSuffixConstant))
		return formatter.selectTemplate(stage,
			fmt.Sprintf(githubForkStartTemplateConstant, repository),
			fmt.Sprintf(githubForkSuccessTemplateConstant, repository),
			fmt.Sprintf(githubForkFailureTemplateConstant, repository, exitCode, standardError),
			fmt.Sprintf(githubForkExecutionFailureTemplateConstant, repository, failureDescription),
		)
	case strings.HasPrefix(endpoint, githubRepositoriesPrefixConstant):
		repository := formatter.ensureValue(strings.TrimPrefix(endpoint, githubRepositoriesPrefixConstant))
		return formatter.selectTemplate(stage,
			fmt.Sprintf(githubRepoLookupStartTemplateConstant, repository),
			fmt.Sprintf(githubRepoLookupSuccessTemplateConstant, repository),
			fmt.Sprintf(githubRepoLookupFailureTemplateConstant, repository, exitCode, standardError),
			fmt.Sprintf(githubRepoLookupExecutionFailureTemplateConstant, repository, failureDescription),
		)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) selectTemplate(stage messageStage, start string, success string, failure string, executionFailure string) string {
	switch stage {
	case messageStageStart:
		return start
	case messageStageSuccess:
		return success
	case messageStageFailure:
		return failure
	case messageStageExecutionFailure:
		return executionFailure
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	return formatter.selectTemplate(stage,
		fmt.Sprintf(genericStartTemplateConstant, commandLabel),
		fmt.Sprintf(genericSuccessTemplateConstant, commandLabel),
		fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError)),
		fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure)),
	)
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
