// Package setup exposes the workspace command. It resolves the repository catalog and the
// source directory, then runs either the create workflow (fork, clone, upstream remote) or
// the update workflow (checkout, fetch, rebase) and prints a summary line.
package setup
