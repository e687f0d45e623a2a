// Package workspace resolves the source directory that holds every local clone.
//
// Resolution is a pre-step: it may prompt for the folder name, offers to create a missing
// directory, and returns a Layout with an absolute root from which clone paths are derived.
// Nothing in the package changes the process working directory.
package workspace
