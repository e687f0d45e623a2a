package update

// StepName identifies one git step of the refresh sequence.
type StepName string

// Refresh steps in execution order.
const (
	StepCheckout StepName = StepName("checkout")
	StepFetch    StepName = StepName("fetch")
	StepRebase   StepName = StepName("rebase")
)

// SyncState is the furthest point a clone reached during a refresh.
type SyncState string

// Clone states. Rebased and RebaseFailed are terminal.
const (
	StateMissing      SyncState = SyncState("Missing")
	StateLocated      SyncState = SyncState("Located")
	StateCheckedOut   SyncState = SyncState("CheckedOut")
	StateFetched      SyncState = SyncState("Fetched")
	StateRebased      SyncState = SyncState("Rebased")
	StateRebaseFailed SyncState = SyncState("RebaseFailed")
)

// StepOutcome records the result of one step.
type StepOutcome struct {
	Step      StepName
	Succeeded bool
	Error     error
}

func (outcome StepOutcome) describe() string {
	if outcome.Succeeded {
		return string(outcome.Step) + " ok"
	}
	return string(outcome.Step) + " failed"
}

// advance returns the state reached after a step completed.
func advance(current SyncState, outcome StepOutcome) SyncState {
	switch outcome.Step {
	case StepCheckout:
		if outcome.Succeeded {
			return StateCheckedOut
		}
	case StepFetch:
		if outcome.Succeeded {
			return StateFetched
		}
	case StepRebase:
		if outcome.Succeeded {
			return StateRebased
		}
		return StateRebaseFailed
	}
	return current
}
