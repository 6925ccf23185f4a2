package ledger

import "fmt"

// TxState is the dispute state attached to a monetary transaction. Using a
// tagged state instead of independent booleans makes charged-back-without-a-
// dispute unrepresentable.
type TxState string

const (
	StateNormal      TxState = "NORMAL"
	StateDisputed    TxState = "DISPUTED"
	StateChargedBack TxState = "CHARGED_BACK"
)

// InvalidStateTransitionError represents a transition the state machine does
// not allow. The processor absorbs these as no-ops; the typed error exists
// for tests and for callers driving transactions directly.
type InvalidStateTransitionError struct {
	FromState TxState
	ToState   TxState
	Tx        TxID
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s for tx %d", e.FromState, e.ToState, e.Tx)
}

// AllowedTransitions defines valid dispute state transitions.
func AllowedTransitions() map[TxState][]TxState {
	return map[TxState][]TxState{
		StateNormal:      {StateDisputed},
		StateDisputed:    {StateNormal, StateChargedBack},
		StateChargedBack: {}, // Terminal state
	}
}

// IsValidTransition checks if a dispute state transition is allowed.
func IsValidTransition(fromState, toState TxState) bool {
	for _, allowed := range AllowedTransitions()[fromState] {
		if allowed == toState {
			return true
		}
	}
	return false
}

// StateDescription provides human-readable descriptions of dispute states.
func StateDescription(state TxState) string {
	switch state {
	case StateNormal:
		return "Transaction is settled with no open dispute"
	case StateDisputed:
		return "Transaction is contested and its funds are held"
	case StateChargedBack:
		return "Dispute was finalized against the client; the account locks"
	default:
		return "Unknown state"
	}
}
