// Package cli constructs the gareth command-line interface, wiring the
// workspace command, configuration loader, and structured logging
// primitives. It exposes helpers to build application instances and to
// execute the command with explicit arguments.
package cli
