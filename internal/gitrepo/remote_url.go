package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshRemoteTemplateConstant         = "git@%s:%s/%s.git"
	httpsRemoteTemplateConstant       = "https://%s/%s/%s.git"
	gitSuffixConstant                 = ".git"
	remoteURLErrorTemplateConstant    = "%s: %s"
	unknownProtocolMessageConstant    = "unsupported remote protocol"
	remoteHostFieldNameConstant       = "host"
	remoteOwnerFieldNameConstant      = "owner"
	remoteRepositoryFieldNameConstant = "repository"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
)

// ParseRemoteProtocol normalizes a configured protocol name.
func ParseRemoteProtocol(value string) (RemoteProtocol, error) {
	switch RemoteProtocol(strings.ToLower(strings.TrimSpace(value))) {
	case RemoteProtocolHTTPS:
		return RemoteProtocolHTTPS, nil
	case RemoteProtocolSSH:
		return RemoteProtocolSSH, nil
	default:
		return "", UnsupportedProtocolError{Protocol: RemoteProtocol(value)}
	}
}

// RemoteURL represents a repository location on a git host.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// UnsupportedProtocolError indicates the provided protocol cannot be formatted.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

// Error describes the unsupported protocol.
func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf(remoteURLErrorTemplateConstant, protocolError.Protocol, unknownProtocolMessageConstant)
}

// FormatRemoteURL renders https://host/owner/repo.git or git@host:owner/repo.git.
func FormatRemoteURL(remote RemoteURL) (string, error) {
	host, hostError := requireValue(remoteHostFieldNameConstant, remote.Host)
	if hostError != nil {
		return "", hostError
	}
	owner, ownerError := requireValue(remoteOwnerFieldNameConstant, remote.Owner)
	if ownerError != nil {
		return "", ownerError
	}
	repository, repositoryError := requireValue(remoteRepositoryFieldNameConstant, strings.TrimSuffix(strings.TrimSpace(remote.Repository), gitSuffixConstant))
	if repositoryError != nil {
		return "", repositoryError
	}

	switch remote.Protocol {
	case RemoteProtocolSSH:
		return fmt.Sprintf(sshRemoteTemplateConstant, host, owner, repository), nil
	case RemoteProtocolHTTPS:
		return fmt.Sprintf(httpsRemoteTemplateConstant, host, owner, repository), nil
	default:
		return "", UnsupportedProtocolError{Protocol: remote.Protocol}
	}
}
