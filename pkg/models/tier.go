package models

// Tier represents the risk/reward class of a task.
type Tier int

const (
	// Tier1 is for trivial tasks: no energy cost, cannot fail.
	Tier1 Tier = 1
	// Tier2 is for moderate tasks with an optional timer.
	Tier2 Tier = 2
	// Tier3 is for high-stakes tasks that require a timer.
	Tier3 Tier = 3
)

// Valid returns true if the tier is a known value.
func (t Tier) Valid() bool {
	switch t {
	case Tier1, Tier2, Tier3:
		return true
	default:
		return false
	}
}

// TimerMode describes how a tier treats the countdown timer.
type TimerMode string

const (
	// TimerModeNone means the tier never runs a timer.
	TimerModeNone TimerMode = "none"
	// TimerModeOptional means the timer is a choice; skipping it reduces XP.
	TimerModeOptional TimerMode = "optional"
	// TimerModeRequired means the tier always runs a timer.
	TimerModeRequired TimerMode = "required"
)
