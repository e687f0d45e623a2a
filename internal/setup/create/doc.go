// Package create builds a workspace from a catalog: for every entry it resolves the upstream
// repository, forks it under the authenticated account, clones the fork and registers the
// upstream remote. A failing entry is reported and the next entry is processed.
package create
