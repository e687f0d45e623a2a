// Package githubcli wraps the GitHub CLI for gareth workflows.
//
// It issues typed `gh api` requests for account, organization and repository lookups
// and fork creation, passes the operator's token through the process environment, and
// classifies failures by the HTTP status gh reports so callers can react to missing
// repositories, rejected credentials and forbidden forks.
package githubcli
