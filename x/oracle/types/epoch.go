package types

import (
	errorsmod "cosmossdk.io/errors"
)

// EpochTiming maps timestamps to epoch ids and phase windows. It is fixed at
// engine construction; epoch boundaries never move once the engine is live.
//
// Epoch id e covers the submit window
// [FirstEpochStartTime + e*SubmitPeriod, FirstEpochStartTime + (e+1)*SubmitPeriod)
// and its reveal window runs for RevealPeriod seconds after the submit window
// closes.
type EpochTiming struct {
	FirstEpochStartTime int64 // unix seconds
	SubmitPeriod        int64 // seconds
	RevealPeriod        int64 // seconds
}

// NewEpochTiming validates the timing configuration. Non-positive periods are
// a setup error, never a query-time error.
func NewEpochTiming(firstEpochStartTime, submitPeriod, revealPeriod int64) (EpochTiming, error) {
	if submitPeriod <= 0 {
		return EpochTiming{}, errorsmod.Wrapf(ErrInvalidTiming, "submit period %d must be positive", submitPeriod)
	}
	if revealPeriod <= 0 {
		return EpochTiming{}, errorsmod.Wrapf(ErrInvalidTiming, "reveal period %d must be positive", revealPeriod)
	}
	return EpochTiming{
		FirstEpochStartTime: firstEpochStartTime,
		SubmitPeriod:        submitPeriod,
		RevealPeriod:        revealPeriod,
	}, nil
}

// EpochID returns the epoch id active at the given timestamp, clamped to 0
// for timestamps before the first epoch start.
func (t EpochTiming) EpochID(now int64) uint64 {
	if now <= t.FirstEpochStartTime {
		return 0
	}
	return uint64((now - t.FirstEpochStartTime) / t.SubmitPeriod)
}

// SubmitWindowStart returns the inclusive start of the submit window.
func (t EpochTiming) SubmitWindowStart(epochID uint64) int64 {
	return t.FirstEpochStartTime + int64(epochID)*t.SubmitPeriod
}

// SubmitWindowEnd returns the exclusive end of the submit window.
func (t EpochTiming) SubmitWindowEnd(epochID uint64) int64 {
	return t.SubmitWindowStart(epochID) + t.SubmitPeriod
}

// RevealWindowEnd returns the exclusive end of the reveal window.
func (t EpochTiming) RevealWindowEnd(epochID uint64) int64 {
	return t.SubmitWindowEnd(epochID) + t.RevealPeriod
}

// IsSubmitOpen reports whether the submit window for the epoch contains now.
func (t EpochTiming) IsSubmitOpen(epochID uint64, now int64) bool {
	return t.SubmitWindowStart(epochID) <= now && now < t.SubmitWindowEnd(epochID)
}

// IsRevealOpen reports whether the reveal window for the epoch contains now.
func (t EpochTiming) IsRevealOpen(epochID uint64, now int64) bool {
	return t.SubmitWindowEnd(epochID) <= now && now < t.RevealWindowEnd(epochID)
}
