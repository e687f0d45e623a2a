package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	repoerrors "github.com/temirov/gareth/internal/repos/errors"
	"github.com/temirov/gareth/internal/repos/shared"
)

const (
	// DefaultSourceDirectoryConstant is the folder name offered when none is configured.
	DefaultSourceDirectoryConstant = "sources"

	sourcePromptTemplateConstant          = ">> Please provide the source folder name [%s]: "
	directoryMissingTemplateConstant      = "Error: %s directory does not exist\n"
	createDirectoryPromptConstant         = "Do you want to create it? [y/N] "
	directoryCreatedTemplateConstant      = "The '%s' directory is created.\n"
	directoryDeclinedMessageConstant      = "the developer setup needs a source directory"
	directoryCreateFailedMessageConstant  = "unable to create directory"
	directoryNotDirectoryMessageConstant  = "path exists but is not a directory"
	directoryInspectFailedMessageConstant = "unable to inspect directory"
	directoryResolveFailedMessageConstant = "unable to resolve absolute path"
	directoryPromptFailedMessageConstant  = "unable to read the operator answer"
	fileSystemMissingMessageConstant      = "workspace filesystem not configured"
	sourceDirectoryPermissionsConstant    = fs.FileMode(0o755)
)

// ErrFileSystemNotConfigured indicates the resolver was constructed without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// Dependencies enumerates the collaborators used while resolving the source directory.
type Dependencies struct {
	FileSystem            shared.FileSystem
	Confirmer             shared.ConfirmationPrompter
	ValuePrompter         shared.ValuePrompter
	TerminalDetector      shared.TerminalDetector
	Output                io.Writer
	HomeDirectoryProvider HomeDirectoryProvider
}

// ResolveOptions configures a single resolution.
type ResolveOptions struct {
	SourceDirectory    string
	SourceExplicit     bool
	ConfirmationPolicy shared.ConfirmationPolicy
}

// Resolver turns a candidate folder name into an existing absolute directory.
type Resolver struct {
	fileSystem            shared.FileSystem
	confirmer             shared.ConfirmationPrompter
	valuePrompter         shared.ValuePrompter
	terminalDetector      shared.TerminalDetector
	output                io.Writer
	homeDirectoryProvider HomeDirectoryProvider
}

// NewResolver constructs a Resolver.
func NewResolver(dependencies Dependencies) (*Resolver, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}
	homeDirectoryProvider := dependencies.HomeDirectoryProvider
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	return &Resolver{
		fileSystem:            dependencies.FileSystem,
		confirmer:             dependencies.Confirmer,
		valuePrompter:         dependencies.ValuePrompter,
		terminalDetector:      dependencies.TerminalDetector,
		output:                output,
		homeDirectoryProvider: homeDirectoryProvider,
	}, nil
}

// Resolve returns the workspace layout. A missing directory is created only after confirmation
// or with ConfirmationAssumeYes; declining yields a DirectoryUnavailable error.
func (resolver *Resolver) Resolve(options ResolveOptions) (Layout, error) {
	candidate := strings.TrimSpace(options.SourceDirectory)
	if len(candidate) == 0 {
		candidate = DefaultSourceDirectoryConstant
	}

	if !options.SourceExplicit && resolver.interactive() && resolver.valuePrompter != nil {
		answer, promptError := resolver.valuePrompter.Ask(fmt.Sprintf(sourcePromptTemplateConstant, candidate), candidate)
		if promptError != nil {
			return Layout{}, repoerrors.New(repoerrors.CodeDirectoryUnavailable, candidate, directoryPromptFailedMessageConstant, promptError)
		}
		if trimmedAnswer := strings.TrimSpace(answer); len(trimmedAnswer) > 0 {
			candidate = trimmedAnswer
		}
	}

	directory := expandHome(candidate, resolver.homeDirectoryProvider)

	info, statError := resolver.fileSystem.Stat(directory)
	switch {
	case statError == nil && !info.IsDir():
		return Layout{}, repoerrors.New(repoerrors.CodeDirectoryUnavailable, directory, directoryNotDirectoryMessageConstant, nil)
	case statError == nil:
		return resolver.layoutFor(directory)
	case !errors.Is(statError, fs.ErrNotExist):
		return Layout{}, repoerrors.New(repoerrors.CodeDirectoryUnavailable, directory, directoryInspectFailedMessageConstant, statError)
	}

	fmt.Fprintf(resolver.output, directoryMissingTemplateConstant, directory)

	if options.ConfirmationPolicy.ShouldPrompt() {
		confirmed, confirmationError := resolver.confirm()
		if confirmationError != nil {
			return Layout{}, repoerrors.New(repoerrors.CodeDirectoryUnavailable, directory, directoryPromptFailedMessageConstant, confirmationError)
		}
		if !confirmed {
			return Layout{}, repoerrors.New(repoerrors.CodeDirectoryUnavailable, directory, directoryDeclinedMessageConstant, nil)
		}
	}

	if mkdirError := resolver.fileSystem.MkdirAll(directory, sourceDirectoryPermissionsConstant); mkdirError != nil {
		return Layout{}, repoerrors.New(repoerrors.CodeDirectoryUnavailable, directory, directoryCreateFailedMessageConstant, mkdirError)
	}
	fmt.Fprintf(resolver.output, directoryCreatedTemplateConstant, directory)

	return resolver.layoutFor(directory)
}

func (resolver *Resolver) confirm() (bool, error) {
	if resolver.confirmer == nil {
		return false, nil
	}
	result, confirmationError := resolver.confirmer.Confirm(createDirectoryPromptConstant)
	if confirmationError != nil {
		return false, confirmationError
	}
	return result.Confirmed, nil
}

func (resolver *Resolver) interactive() bool {
	return resolver.terminalDetector != nil && resolver.terminalDetector.IsInteractive()
}

func (resolver *Resolver) layoutFor(directory string) (Layout, error) {
	absoluteDirectory, absError := resolver.fileSystem.Abs(directory)
	if absError != nil {
		return Layout{}, repoerrors.New(repoerrors.CodeDirectoryUnavailable, directory, directoryResolveFailedMessageConstant, absError)
	}
	return Layout{SourceDirectory: absoluteDirectory}, nil
}
