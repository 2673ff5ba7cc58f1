package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// AccountPower is one account's vote power entry in a snapshot table.
type AccountPower struct {
	Account string
	Native  math.Int
	Asset   math.Int
}

// SnapshotVotePowerSource serves vote power from a static table, ignoring the
// snapshot height. Used by the replay simulator and in tests; a production
// deployment wires an adapter over its real balance ledger instead.
type SnapshotVotePowerSource struct {
	entries           map[string]AccountPower
	totalNative       math.Int
	totalAsset        math.Int
	assetVotePowerUSD math.Int
}

var _ VotePowerSource = (*SnapshotVotePowerSource)(nil)

// NewSnapshotVotePowerSource builds a source from the given entries. Totals
// are the sums over the table; assetVotePowerUSD is supplied separately since
// the USD conversion rate is external to the table.
func NewSnapshotVotePowerSource(entries []AccountPower, assetVotePowerUSD math.Int) *SnapshotVotePowerSource {
	s := &SnapshotVotePowerSource{
		entries:           make(map[string]AccountPower, len(entries)),
		totalNative:       math.ZeroInt(),
		totalAsset:        math.ZeroInt(),
		assetVotePowerUSD: assetVotePowerUSD,
	}
	for _, e := range entries {
		s.entries[e.Account] = e
		s.totalNative = s.totalNative.Add(e.Native)
		s.totalAsset = s.totalAsset.Add(e.Asset)
	}
	return s
}

// VotePowerOf implements VotePowerSource. Unknown accounts have zero power.
func (s *SnapshotVotePowerSource) VotePowerOf(account string, _ int64) (math.Int, math.Int, error) {
	e, ok := s.entries[account]
	if !ok {
		return math.ZeroInt(), math.ZeroInt(), nil
	}
	if e.Native.IsNil() || e.Asset.IsNil() || e.Native.IsNegative() || e.Asset.IsNegative() {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(ErrVotePowerUnavailable,
			"malformed vote power entry for %s", account)
	}
	return e.Native, e.Asset, nil
}

// TotalVotePowerAt implements VotePowerSource.
func (s *SnapshotVotePowerSource) TotalVotePowerAt(_ int64) (math.Int, math.Int, math.Int, error) {
	return s.totalNative, s.totalAsset, s.assetVotePowerUSD, nil
}
