package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Basis point scale used by all ratio parameters (10000 = 100%).
const BipsTotal = 10000

// Params holds the per-epoch threshold configuration. A copy is frozen into
// every epoch at creation time, so updating params never changes the outcome
// of an epoch that already exists.
type Params struct {
	// MinVoteCount is the minimum number of revealed votes required for an
	// epoch to finalize. An epoch below this count is permanently unresolved.
	MinVoteCount uint32

	// LowAssetUSDThreshold is the USD-equivalent asset vote power at which
	// the asset side starts contributing (500 bips) to the blended weight.
	LowAssetUSDThreshold math.Int

	// HighAssetUSDThreshold is the USD-equivalent asset vote power at which
	// the asset contribution is capped at 5000 bips.
	HighAssetUSDThreshold math.Int

	// HighAssetTurnoutThresholdBips is the asset turnout (in bips) needed for
	// the asset contribution to reach its full base ratio.
	HighAssetTurnoutThresholdBips uint32
}

// DefaultParams returns default oracle parameters
func DefaultParams() Params {
	return Params{
		MinVoteCount:                  1,
		LowAssetUSDThreshold:          math.NewInt(200_000_000),
		HighAssetUSDThreshold:         math.NewInt(3_000_000_000),
		HighAssetTurnoutThresholdBips: 5000,
	}
}

// Validate rejects malformed parameters before any epoch can be created.
func (p Params) Validate() error {
	if p.MinVoteCount == 0 {
		return errorsmod.Wrap(ErrInvalidThreshold, "min vote count must be positive")
	}
	if p.LowAssetUSDThreshold.IsNil() || p.HighAssetUSDThreshold.IsNil() {
		return errorsmod.Wrap(ErrInvalidThreshold, "asset USD thresholds must be set")
	}
	if p.LowAssetUSDThreshold.IsNegative() {
		return errorsmod.Wrap(ErrInvalidThreshold, "low asset USD threshold must be non-negative")
	}
	if !p.HighAssetUSDThreshold.GT(p.LowAssetUSDThreshold) {
		return errorsmod.Wrapf(ErrInvalidThreshold,
			"high asset USD threshold %s must exceed low threshold %s",
			p.HighAssetUSDThreshold, p.LowAssetUSDThreshold)
	}
	if p.HighAssetTurnoutThresholdBips == 0 || p.HighAssetTurnoutThresholdBips > BipsTotal {
		return errorsmod.Wrapf(ErrInvalidThreshold,
			"high asset turnout threshold %d bips outside (0, %d]",
			p.HighAssetTurnoutThresholdBips, BipsTotal)
	}
	return nil
}
