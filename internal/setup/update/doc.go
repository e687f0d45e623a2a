// Package update refreshes the clones of an existing workspace. Every located clone goes
// through checkout, fetch and rebase; each step runs even when an earlier one failed and
// every outcome is reported.
package update
