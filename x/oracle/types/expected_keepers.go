package types

import (
	"cosmossdk.io/math"
)

// VotePowerSource resolves vote power balances at a snapshot height. The
// oracle engine never inspects balances directly; an adapter over the host
// system's staking or token ledger satisfies this interface.
type VotePowerSource interface {
	// VotePowerOf returns the native and asset vote power of an account at
	// the given snapshot height.
	VotePowerOf(account string, snapshotHeight int64) (native, asset math.Int, err error)

	// TotalVotePowerAt returns the global native and asset vote power totals
	// at the given snapshot height, plus the USD-equivalent value of the
	// total asset vote power.
	TotalVotePowerAt(snapshotHeight int64) (totalNative, totalAsset, assetVotePowerUSD math.Int, err error)
}

// RewardHooks receive notifications after an epoch finalizes. Hook failures
// are logged by the engine but never roll back a finalized epoch.
type RewardHooks interface {
	AfterPriceEpochFinalized(epochID uint64, medianPrice uint64, rewarded []RewardedVote) error
}

// MultiRewardHooks combines several hooks into one, calling each in order.
type MultiRewardHooks []RewardHooks

// NewMultiRewardHooks creates a combined hook from the given hooks.
func NewMultiRewardHooks(hooks ...RewardHooks) MultiRewardHooks {
	return hooks
}

// AfterPriceEpochFinalized calls every registered hook, returning the first
// error encountered.
func (h MultiRewardHooks) AfterPriceEpochFinalized(epochID uint64, medianPrice uint64, rewarded []RewardedVote) error {
	for i := range h {
		if err := h[i].AfterPriceEpochFinalized(epochID, medianPrice, rewarded); err != nil {
			return err
		}
	}
	return nil
}
