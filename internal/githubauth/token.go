// Package githubauth discovers the GitHub token used to authenticate workspace creation.
package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted when no token flag is supplied.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

// TokenSourceFlag marks a token supplied on the command line.
const TokenSourceFlag = "flag"

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// Token is a resolved credential and the place it came from. Source is safe to log; Value is not.
type Token struct {
	Value  string
	Source string
}

// EnvironmentLookup reads an environment variable.
type EnvironmentLookup func(key string) (string, bool)

// Resolver picks the token from an explicit value or the environment.
type Resolver struct {
	lookup EnvironmentLookup
}

// NewResolver constructs a Resolver. A nil lookup reads the process environment.
func NewResolver(lookup EnvironmentLookup) Resolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return Resolver{lookup: lookup}
}

// Resolve returns the explicit token when set, otherwise the first non-empty variable in
// GH_TOKEN, GITHUB_TOKEN, GITHUB_API_TOKEN order.
func (resolver Resolver) Resolve(explicit string) (Token, bool) {
	if trimmed := strings.TrimSpace(explicit); len(trimmed) > 0 {
		return Token{Value: trimmed, Source: TokenSourceFlag}, true
	}

	lookup := resolver.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range tokenPreference {
		value, exists := lookup(key)
		if !exists {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) > 0 {
			return Token{Value: value, Source: key}, true
		}
	}
	return Token{}, false
}

// MapLookup adapts a map into an EnvironmentLookup.
func MapLookup(environment map[string]string) EnvironmentLookup {
	return func(key string) (string, bool) {
		value, exists := environment[key]
		return value, exists
	}
}
