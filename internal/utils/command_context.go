package utils

import (
	"context"
	"strings"
)

type commandContextKey struct{}

// ConfigurationSource describes where the configuration for a command run came from.
type ConfigurationSource struct {
	FilePath         string
	EmbeddedDefaults bool
}

// Describe returns the configuration file path, or a marker when only embedded defaults applied.
func (source ConfigurationSource) Describe() string {
	trimmedPath := strings.TrimSpace(source.FilePath)
	switch {
	case len(trimmedPath) > 0:
		return trimmedPath
	case source.EmbeddedDefaults:
		return embeddedConfigurationMarkerConstant
	default:
		return ""
	}
}

const embeddedConfigurationMarkerConstant = "(embedded defaults)"

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationSource attaches the configuration source to the provided context.
func (accessor CommandContextAccessor) WithConfigurationSource(parentContext context.Context, source ConfigurationSource) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, commandContextKey{}, source)
}

// ConfigurationSource extracts the configuration source from the provided context.
func (accessor CommandContextAccessor) ConfigurationSource(executionContext context.Context) (ConfigurationSource, bool) {
	if executionContext == nil {
		return ConfigurationSource{}, false
	}
	source, available := executionContext.Value(commandContextKey{}).(ConfigurationSource)
	return source, available
}
