package githubauth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gareth/internal/githubauth"
)

func TestResolverResolve(testInstance *testing.T) {
	testCases := []struct {
		name          string
		explicit      string
		environment   map[string]string
		expectedToken githubauth.Token
		expectFound   bool
	}{
		{
			name:          "flag_wins",
			explicit:      " flag-token ",
			environment:   map[string]string{githubauth.EnvGitHubCLIToken: "env-token"},
			expectedToken: githubauth.Token{Value: "flag-token", Source: githubauth.TokenSourceFlag},
			expectFound:   true,
		},
		{
			name: "gh_token_preferred",
			environment: map[string]string{
				githubauth.EnvGitHubToken:    "github-token",
				githubauth.EnvGitHubCLIToken: "gh-token",
			},
			expectedToken: githubauth.Token{Value: "gh-token", Source: githubauth.EnvGitHubCLIToken},
			expectFound:   true,
		},
		{
			name: "skips_blank_values",
			environment: map[string]string{
				githubauth.EnvGitHubCLIToken: "   ",
				githubauth.EnvGitHubAPIToken: "api-token",
			},
			expectedToken: githubauth.Token{Value: "api-token", Source: githubauth.EnvGitHubAPIToken},
			expectFound:   true,
		},
		{
			name:        "missing",
			environment: map[string]string{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolver := githubauth.NewResolver(githubauth.MapLookup(testCase.environment))
			token, found := resolver.Resolve(testCase.explicit)
			require.Equal(testInstance, testCase.expectFound, found)
			require.Equal(testInstance, testCase.expectedToken, token)
		})
	}
}
