// Package ui renders command lifecycle events as concise console messages.
//
// Structured telemetry stays with execshell; this package only decides what an operator
// watching a workspace run should read.
package ui
