package types

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// CommitHash is the submitter-bound hash published during the submit window.
type CommitHash [sha256.Size]byte

// String returns the hex encoding of the hash.
func (h CommitHash) String() string {
	return hex.EncodeToString(h[:])
}

// ComputeCommitHash binds a price and random value to a submitter identity.
// Binding to the submitter prevents a commitment from being replayed by
// another party observing the hash on the wire.
func ComputeCommitHash(price, random uint64, submitter string) CommitHash {
	buf := make([]byte, 16, 16+len(submitter))
	binary.BigEndian.PutUint64(buf[0:8], price)
	binary.BigEndian.PutUint64(buf[8:16], random)
	buf = append(buf, submitter...)
	return sha256.Sum256(buf)
}

// Vote is a successfully revealed price observation. Immutable after
// creation; vote powers are resolved once, at reveal time, from the epoch's
// frozen snapshot height.
type Vote struct {
	Submitter       string
	Price           uint64
	Random          uint64
	VotePowerNative math.Int
	VotePowerAsset  math.Int
}

// WeightedVote pairs a vote with its blended weight on the 1e12 scale.
// Computed at finalize time only, never persisted.
type WeightedVote struct {
	Vote   Vote
	Weight math.Int
}

// RewardedVote identifies a voter inside the truncated quartile band,
// reported with its native weight for the external reward subsystem.
type RewardedVote struct {
	Address      string
	NativeWeight math.Int
}

// MediansInfo records the index positions the median walk produced over the
// price-sorted vote list. Reported for external reproducibility.
type MediansInfo struct {
	TruncatedFirstQuartileIndex int
	FirstQuartileIndex          int
	MedianIndex                 int
	LastQuartileIndex           int
	TruncatedLastQuartileIndex  int
}

// EpochResult is the immutable outcome of a finalized price epoch.
type EpochResult struct {
	EpochID uint64

	LowPrice    uint64
	MedianPrice uint64
	HighPrice   uint64

	LowWeightSum      math.Int
	RewardedWeightSum math.Int
	HighWeightSum     math.Int
	TotalWeight       math.Int

	NativeLowWeightSum      math.Int
	NativeRewardedWeightSum math.Int
	NativeHighWeightSum     math.Int

	Medians MediansInfo

	// RewardedVotes is sorted by address, not by price or weight, so the
	// output is stable and independently reproducible.
	RewardedVotes []RewardedVote
}

// Validate checks the structural invariants every finalized epoch must hold.
func (r EpochResult) Validate() error {
	if r.LowPrice > r.MedianPrice || r.MedianPrice > r.HighPrice {
		return errorsmod.Wrapf(ErrStateCorruption,
			"price band out of order: low=%d median=%d high=%d",
			r.LowPrice, r.MedianPrice, r.HighPrice)
	}
	sum := r.LowWeightSum.Add(r.RewardedWeightSum).Add(r.HighWeightSum)
	if !sum.Equal(r.TotalWeight) {
		return errorsmod.Wrapf(ErrStateCorruption,
			"weight sums %s do not add up to total %s", sum, r.TotalWeight)
	}
	m := r.Medians
	if m.TruncatedFirstQuartileIndex > m.FirstQuartileIndex ||
		m.FirstQuartileIndex > m.MedianIndex ||
		m.MedianIndex > m.LastQuartileIndex ||
		m.LastQuartileIndex > m.TruncatedLastQuartileIndex {
		return errorsmod.Wrapf(ErrStateCorruption, "median indices out of order: %+v", m)
	}
	return nil
}
