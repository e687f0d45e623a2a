// Package execshell runs the external git and gh processes gareth depends on.
//
// ShellExecutor wraps a CommandRunner (OSCommandRunner in production) and turns
// non-zero exits into typed errors, while CommandEventObserver implementations
// receive lifecycle events for logging. CommandMessageFormatter renders those
// events as operator-facing sentences for clone, remote, checkout, fetch,
// rebase and GitHub API invocations.
package execshell
