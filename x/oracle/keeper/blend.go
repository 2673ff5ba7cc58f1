package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/ember-oracle/ember/x/oracle/types"
)

// Weight scales. Vote powers are first normalized to shares of the global
// total on the 1e12 scale, then blended per voter on the 1e8 base, giving a
// final weight in [0, 1e12].
var (
	weightScale = math.NewInt(1_000_000_000_000)
	blendBase   = math.NewInt(100_000_000)
)

// Base asset ratio interpolation bounds, in bips. Below the low USD
// threshold the asset side contributes nothing; between the thresholds the
// base ratio climbs linearly from 500 to 5000; at or above the high
// threshold it stays capped at 5000.
const (
	baseRatioFloorBips = 500
	baseRatioCapBips   = 5000
)

// share normalizes one vote power to the 1e12 scale against a global total.
// A zero total means the dimension carries no power at all.
func share(power, total math.Int) math.Int {
	if total.IsZero() || power.IsZero() {
		return math.ZeroInt()
	}
	return power.Mul(weightScale).Quo(total)
}

// baseAssetRatioBips interpolates the asset contribution cap from the USD
// value of total asset vote power.
func baseAssetRatioBips(assetVotePowerUSD math.Int, params types.Params) math.Int {
	if assetVotePowerUSD.LT(params.LowAssetUSDThreshold) {
		return math.ZeroInt()
	}
	if assetVotePowerUSD.GTE(params.HighAssetUSDThreshold) {
		return math.NewInt(baseRatioCapBips)
	}
	span := params.HighAssetUSDThreshold.Sub(params.LowAssetUSDThreshold)
	above := assetVotePowerUSD.Sub(params.LowAssetUSDThreshold)
	return math.NewInt(baseRatioFloorBips).Add(
		math.NewInt(baseRatioCapBips - baseRatioFloorBips).Mul(above).Quo(span))
}

// assetRatioBips computes the effective asset ratio for an epoch. The base
// ratio is scaled down by asset turnout until turnout reaches the configured
// threshold. Degenerate cases pin the ratio: no asset participation means
// pure native weighting, no native participation means pure asset weighting.
func assetRatioBips(sumNativeShare, sumAssetShare, assetVotePowerUSD math.Int, params types.Params) math.Int {
	if sumAssetShare.IsZero() {
		return math.ZeroInt()
	}
	if sumNativeShare.IsZero() {
		return math.NewInt(types.BipsTotal)
	}
	base := baseAssetRatioBips(assetVotePowerUSD, params)
	turnoutBips := sumAssetShare.Quo(blendBase)
	threshold := math.NewInt(int64(params.HighAssetTurnoutThresholdBips))
	if turnoutBips.GTE(threshold) {
		return base
	}
	return base.Mul(turnoutBips).Quo(threshold)
}

// blendVoteWeights turns the epoch's votes into blended weights on the 1e12
// scale, returning the effective asset ratio used. Votes and weights are
// index-aligned. Returns ErrInsufficientWeight when no voter carries power
// in either dimension.
func blendVoteWeights(votes []types.Vote, totalNative, totalAsset, assetVotePowerUSD math.Int, params types.Params) ([]math.Int, math.Int, error) {
	nativeShares := make([]math.Int, len(votes))
	assetShares := make([]math.Int, len(votes))
	sumNative := math.ZeroInt()
	sumAsset := math.ZeroInt()
	for i, v := range votes {
		nativeShares[i] = share(v.VotePowerNative, totalNative)
		assetShares[i] = share(v.VotePowerAsset, totalAsset)
		sumNative = sumNative.Add(nativeShares[i])
		sumAsset = sumAsset.Add(assetShares[i])
	}
	if sumNative.IsZero() && sumAsset.IsZero() {
		return nil, math.Int{}, errorsmod.Wrap(types.ErrInsufficientWeight,
			"no vote carries native or asset power")
	}

	ratio := assetRatioBips(sumNative, sumAsset, assetVotePowerUSD, params)
	nativeRatio := math.NewInt(types.BipsTotal).Sub(ratio)

	weights := make([]math.Int, len(votes))
	for i := range votes {
		w := math.ZeroInt()
		if !nativeRatio.IsZero() && !sumNative.IsZero() {
			w = w.Add(nativeRatio.Mul(nativeShares[i]).Mul(blendBase).Quo(sumNative))
		}
		if !ratio.IsZero() && !sumAsset.IsZero() {
			w = w.Add(ratio.Mul(assetShares[i]).Mul(blendBase).Quo(sumAsset))
		}
		weights[i] = w
	}
	return weights, ratio, nil
}
