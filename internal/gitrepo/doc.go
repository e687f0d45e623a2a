// Package gitrepo drives the git operations used to build and refresh a workspace.
//
// Every RepositoryManager call names the directory it runs in, so no operation depends on
// the process working directory. RemoteURL formats fork and upstream clone URLs.
package gitrepo
