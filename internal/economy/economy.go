// Package economy implements the tiered task-economy rules: XP rewards,
// energy costs, fail penalties, and tier unlocks. Every function here is
// pure and deterministic; the server runs the same formulas and the two
// sides must agree on every value.
package economy

import (
	"fmt"
	"math"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// BaseMaxEnergy is the focus energy a fresh run starts with.
const BaseMaxEnergy = 50

// TierRules holds the fixed economy parameters for one tier.
type TierRules struct {
	// EnergyCost is spent when a task of this tier is started.
	EnergyCost int
	// BaseXP is the reward for a task at the tier's minimum duration.
	BaseXP int
	// MinDuration is the shortest allowed task length in minutes.
	MinDuration int
	// MaxDuration is the longest allowed task length in minutes.
	MaxDuration int
	// CanFail indicates whether the fail transition is legal for this tier.
	CanFail bool
	// TimerMode controls how the countdown interacts with the XP formula.
	TimerMode models.TimerMode
	// NoTimerMultiplier scales XP when an optional timer is skipped.
	NoTimerMultiplier float64
	// XPPenaltyFraction is the share of daily XP lost when a task fails.
	XPPenaltyFraction float64
	// UnlockMinutes is the total focus minutes required to unlock the tier.
	UnlockMinutes int
}

// tierRules is the unified source of truth for tier parameters. The values
// mirror the server's game config; changing one side without the other
// breaks the optimistic preview.
var tierRules = map[models.Tier]TierRules{
	models.Tier1: {
		EnergyCost:  0,
		BaseXP:      15,
		MinDuration: 2,
		MaxDuration: 15,
		CanFail:     false,
		TimerMode:   models.TimerModeNone,
	},
	models.Tier2: {
		EnergyCost:        5,
		BaseXP:            65,
		MinDuration:       10,
		MaxDuration:       60,
		CanFail:           true,
		TimerMode:         models.TimerModeOptional,
		NoTimerMultiplier: 0.8,
		UnlockMinutes:     15,
	},
	models.Tier3: {
		EnergyCost:        15,
		BaseXP:            175,
		MinDuration:       25,
		MaxDuration:       120,
		CanFail:           true,
		TimerMode:         models.TimerModeRequired,
		XPPenaltyFraction: 0.1,
		UnlockMinutes:     45,
	},
}

// Rules returns the economy parameters for a tier.
func Rules(tier models.Tier) (TierRules, bool) {
	r, ok := tierRules[tier]
	return r, ok
}

// ComputeXP returns the XP reward for a task of the given tier and duration.
// The reward scales linearly with duration relative to the tier minimum.
// Skipping an optional timer applies the tier's no-timer multiplier; tiers
// whose timer mode is not optional always get the full reward.
func ComputeXP(tier models.Tier, duration int, useTimer bool) int {
	r, ok := tierRules[tier]
	if !ok {
		return 0
	}

	multiplier := 1.0
	if !useTimer && r.TimerMode == models.TimerModeOptional {
		multiplier = r.NoTimerMultiplier
	}

	xp := float64(r.BaseXP) * float64(duration) / float64(r.MinDuration) * multiplier
	return int(math.Round(xp))
}

// EnergyCost returns the fixed energy cost of starting a task of the tier.
func EnergyCost(tier models.Tier) int {
	return tierRules[tier].EnergyCost
}

// FailPenalty returns the XP and energy lost when a task of the given tier
// fails. currentDailyXP is the run's XP before the failure is applied; the
// store must keep it non-negative. Energy spent at start is never refunded
// on failure, so energyLoss equals the cost already paid.
func FailPenalty(tier models.Tier, currentDailyXP, energyCost int) (xpLoss, energyLoss int) {
	r, ok := tierRules[tier]
	if !ok || !r.CanFail {
		return 0, 0
	}
	xpLoss = int(math.Floor(float64(currentDailyXP) * r.XPPenaltyFraction))
	return xpLoss, energyCost
}

// CanFail reports whether the fail transition is legal for the tier.
func CanFail(tier models.Tier) bool {
	return tierRules[tier].CanFail
}

// IsTierUnlocked reports whether the tier is available given the user's
// accumulated focus minutes. Monotonic: once unlocked, always unlocked.
func IsTierUnlocked(tier models.Tier, totalFocusMinutes int) bool {
	r, ok := tierRules[tier]
	if !ok {
		return false
	}
	return totalFocusMinutes >= r.UnlockMinutes
}

// ValidateDuration rejects durations outside the tier's bounds. This is the
// intent-boundary check; the engine's formulas assume it already ran.
func ValidateDuration(tier models.Tier, duration int) error {
	r, ok := tierRules[tier]
	if !ok {
		return fmt.Errorf("invalid tier: %d", tier)
	}
	if duration < r.MinDuration || duration > r.MaxDuration {
		return fmt.Errorf("tier %d duration must be between %d and %d minutes, got %d",
			tier, r.MinDuration, r.MaxDuration, duration)
	}
	return nil
}
