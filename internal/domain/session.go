package domain

import "time"

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	// PhaseEnded is only carried by summaries. A session that ends goes
	// straight back to PhaseIdle.
	PhaseEnded Phase = "ended"
)

type EndReason string

const (
	EndReasonWrongAnswer EndReason = "wrong_answer"
	EndReasonTimeout     EndReason = "timeout"
	EndReasonExhausted   EndReason = "exhausted"
	EndReasonManual      EndReason = "manual"
	EndReasonInvariant   EndReason = "invariant"
)

func (r EndReason) Label() string {
	switch r {
	case EndReasonWrongAnswer:
		return "wrong answer"
	case EndReasonTimeout:
		return "time is up"
	case EndReasonExhausted:
		return "every item answered"
	case EndReasonManual:
		return "stopped"
	case EndReasonInvariant:
		return "internal error"
	default:
		return string(r)
	}
}

// SessionState is a read-only snapshot of the engine state.
type SessionState struct {
	Phase                 Phase
	SessionID             string
	CurrentItem           *Item
	UsedItemIDs           []ItemID
	RemainingSeconds      int
	ElapsedSeconds        int
	RoundsCorrect         int
	PreviousRoundsCorrect int
	MaxRoundsCorrect      int
}

func (s SessionState) Used(id ItemID) bool {
	for _, used := range s.UsedItemIDs {
		if used == id {
			return true
		}
	}
	return false
}

type Summary struct {
	SessionID             string
	Reason                EndReason
	Answer                string
	PreviousRoundsCorrect int
	MaxRoundsCorrect      int
	ElapsedSeconds        int
	RoundsCorrect         int
	StartedAt             time.Time
	EndedAt               time.Time
}

// Outcome is the result of a submitted answer or a timer tick. Summary is set
// only when Ended is true.
type Outcome struct {
	Correct bool
	Ended   bool
	Summary Summary
}
