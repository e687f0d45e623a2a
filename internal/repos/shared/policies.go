package shared

// ConfirmationPolicy specifies how services should handle user confirmations.
type ConfirmationPolicy int

const (
	// ConfirmationPrompt indicates the service should prompt the user.
	ConfirmationPrompt ConfirmationPolicy = iota
	// ConfirmationAssumeYes indicates the service should continue without prompting.
	ConfirmationAssumeYes
)

// ConfirmationPolicyFromBool converts the --yes flag into a policy.
func ConfirmationPolicyFromBool(assumeYes bool) ConfirmationPolicy {
	if assumeYes {
		return ConfirmationAssumeYes
	}
	return ConfirmationPrompt
}

// ShouldPrompt reports whether the service must prompt the user.
func (policy ConfirmationPolicy) ShouldPrompt() bool {
	return policy != ConfirmationAssumeYes
}

// ExecutionMode distinguishes real runs from previews.
type ExecutionMode int

const (
	// ExecutionApply performs mutations.
	ExecutionApply ExecutionMode = iota
	// ExecutionDryRun performs read-only checks and reports the plan.
	ExecutionDryRun
)

// ExecutionModeFromBool converts the --dry-run flag into a mode.
func ExecutionModeFromBool(dryRun bool) ExecutionMode {
	if dryRun {
		return ExecutionDryRun
	}
	return ExecutionApply
}

// IsDryRun reports whether mutations must be skipped.
func (mode ExecutionMode) IsDryRun() bool {
	return mode == ExecutionDryRun
}
