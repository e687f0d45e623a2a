package flags

import (
	"strings"

	"github.com/spf13/cobra"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Automatically confirm prompts"
	// SourceFlagName exposes the workspace source directory flag name.
	SourceFlagName = "source"
	// SourceFlagShorthand provides the shorthand for the source flag.
	SourceFlagShorthand = "s"
	// SourceFlagUsage describes the source flag purpose.
	SourceFlagUsage = "Directory holding the repository clones"
	// BranchFlagName exposes the mainline branch flag name.
	BranchFlagName = "branch"
	// BranchFlagUsage describes the branch flag purpose.
	BranchFlagUsage = "Mainline branch refreshed by update runs"
)

// SourceFlagDefinition captures configuration for the workspace directory flag.
type SourceFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// SourceFlagValues stores the workspace directory flag value.
type SourceFlagValues struct {
	Directory string
}

// BindSourceFlags attaches the workspace directory flag to the provided command.
func BindSourceFlags(command *cobra.Command, defaults SourceFlagValues, definition SourceFlagDefinition) *SourceFlagValues {
	values := defaults
	if command == nil || !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = SourceFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = SourceFlagUsage
	}

	if command.Flags().Lookup(flagName) == nil {
		command.Flags().StringVarP(&values.Directory, flagName, definition.Shorthand, defaults.Directory, flagUsage)
	}
	return &values
}

// Explicit reports whether the operator supplied the source flag on the command line.
func (values *SourceFlagValues) Explicit(command *cobra.Command, flagName string) bool {
	if values == nil || command == nil {
		return false
	}
	if len(flagName) == 0 {
		flagName = SourceFlagName
	}
	return command.Flags().Changed(flagName) && len(strings.TrimSpace(values.Directory)) > 0
}

// BranchFlagDefinition captures configuration for branch context flags.
type BranchFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// BranchFlagValues stores branch context flag values.
type BranchFlagValues struct {
	Name string
}

// BindBranchFlags attaches branch context flags to the provided command.
func BindBranchFlags(command *cobra.Command, defaults BranchFlagValues, definition BranchFlagDefinition) *BranchFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.Flags().StringVar(&values.Name, definition.Name, defaults.Name, definition.Usage)
	return &values
}
