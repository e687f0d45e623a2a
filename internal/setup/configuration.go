package setup

import (
	"strings"

	"github.com/temirov/gareth/internal/catalog"
	"github.com/temirov/gareth/internal/gitrepo"
	"github.com/temirov/gareth/internal/repos/shared"
	"github.com/temirov/gareth/internal/workspace"
)

const (
	configurationSourceKeyConstant         = "source"
	configurationHostKeyConstant           = "host"
	configurationProtocolKeyConstant       = "protocol"
	configurationBranchKeyConstant         = "branch"
	configurationUpstreamRemoteKeyConstant = "upstream_remote"
	configurationStrictKeyConstant         = "strict"
	configurationKeySeparatorConstant      = "."
)

// CommandConfiguration captures persistent settings for the workspace command.
type CommandConfiguration struct {
	Source         string                  `mapstructure:"source"`
	Host           string                  `mapstructure:"host"`
	Protocol       string                  `mapstructure:"protocol"`
	Branch         string                  `mapstructure:"branch"`
	UpstreamRemote string                  `mapstructure:"upstream_remote"`
	Strict         bool                    `mapstructure:"strict"`
	Repositories   []catalog.RepositoryRef `mapstructure:"repositories"`
}

// DefaultCommandConfiguration provides default settings. The repository catalog ships in the
// embedded configuration file rather than here.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Source:         workspace.DefaultSourceDirectoryConstant,
		Host:           shared.DefaultHostConstant,
		Protocol:       string(gitrepo.RemoteProtocolHTTPS),
		Branch:         shared.DefaultMainlineBranchConstant,
		UpstreamRemote: shared.UpstreamRemoteNameConstant,
		Strict:         false,
	}
}

// DefaultConfigurationValues produces Viper defaults under the provided root key.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		prefix + configurationSourceKeyConstant:         defaults.Source,
		prefix + configurationHostKeyConstant:           defaults.Host,
		prefix + configurationProtocolKeyConstant:       defaults.Protocol,
		prefix + configurationBranchKeyConstant:         defaults.Branch,
		prefix + configurationUpstreamRemoteKeyConstant: defaults.UpstreamRemote,
		prefix + configurationStrictKeyConstant:         defaults.Strict,
	}
}

// Sanitize trims values and restores defaults for blank settings.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration
	sanitized.Source = valueOrDefault(configuration.Source, defaults.Source)
	sanitized.Host = valueOrDefault(configuration.Host, defaults.Host)
	sanitized.Protocol = strings.ToLower(valueOrDefault(configuration.Protocol, defaults.Protocol))
	sanitized.Branch = valueOrDefault(configuration.Branch, defaults.Branch)
	sanitized.UpstreamRemote = valueOrDefault(configuration.UpstreamRemote, defaults.UpstreamRemote)
	sanitized.Repositories = append([]catalog.RepositoryRef(nil), configuration.Repositories...)
	return sanitized
}

func valueOrDefault(value string, defaultValue string) string {
	if trimmed := strings.TrimSpace(value); len(trimmed) > 0 {
		return trimmed
	}
	return defaultValue
}
