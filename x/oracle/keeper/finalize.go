package keeper

import (
	"time"

	errorsmod "cosmossdk.io/errors"

	"github.com/ember-oracle/ember/x/oracle/types"
)

// FinalizePriceEpoch closes an epoch after its reveal window and computes
// the truncated weighted median result. The first successful call freezes
// the result forever; a later call gets ErrAlreadyFinalized. An epoch that
// fails its vote count or weight checks is marked permanently unresolved
// and every later attempt gets ErrEpochUnresolvable. Transient failures,
// such as the vote power totals being unavailable, leave the epoch open.
func (k *Keeper) FinalizePriceEpoch(epochID uint64, now int64) (types.EpochResult, error) {
	started := time.Now()
	k.mu.Lock()
	defer k.mu.Unlock()
	defer func() {
		k.metrics.FinalizeLatency.Observe(time.Since(started).Seconds())
	}()

	if now < k.timing.RevealWindowEnd(epochID) {
		return types.EpochResult{}, errorsmod.Wrapf(types.ErrOutOfWindow,
			"reveal window for epoch %d closes at %d, now %d",
			epochID, k.timing.RevealWindowEnd(epochID), now)
	}

	st := k.getOrCreateEpoch(epochID)
	switch st.phase {
	case phaseFinalized:
		return types.EpochResult{}, errorsmod.Wrapf(types.ErrAlreadyFinalized, "epoch %d", epochID)
	case phaseFailed:
		return types.EpochResult{}, errorsmod.Wrapf(types.ErrEpochUnresolvable,
			"epoch %d: %s", epochID, st.failReason)
	}

	votes := sortedVotes(st)
	if uint32(len(votes)) < st.params.MinVoteCount {
		err := errorsmod.Wrapf(types.ErrInsufficientVotes,
			"epoch %d has %d votes, need %d", epochID, len(votes), st.params.MinVoteCount)
		k.failEpoch(st, epochID, "insufficient_votes", err)
		return types.EpochResult{}, err
	}

	totalNative, totalAsset, assetVotePowerUSD, err := k.powerSource.TotalVotePowerAt(st.snapshotHeight)
	if err != nil {
		// Leave the epoch open; the source may recover.
		return types.EpochResult{}, errorsmod.Wrapf(err,
			"resolving total vote power at height %d", st.snapshotHeight)
	}

	weights, ratio, err := blendVoteWeights(votes, totalNative, totalAsset, assetVotePowerUSD, st.params)
	if err != nil {
		k.failEpoch(st, epochID, "insufficient_weight", err)
		return types.EpochResult{}, err
	}

	outcome, err := computeWeightedMedian(votes, weights)
	if err != nil {
		k.failEpoch(st, epochID, "insufficient_weight", err)
		return types.EpochResult{}, err
	}

	result := types.EpochResult{
		EpochID:                 epochID,
		LowPrice:                outcome.lowPrice,
		MedianPrice:             outcome.medianPrice,
		HighPrice:               outcome.highPrice,
		LowWeightSum:            outcome.lowWeightSum,
		RewardedWeightSum:       outcome.rewardedWeightSum,
		HighWeightSum:           outcome.highWeightSum,
		TotalWeight:             outcome.totalWeight,
		NativeLowWeightSum:      outcome.nativeLowWeightSum,
		NativeRewardedWeightSum: outcome.nativeRewardedWeightSum,
		NativeHighWeightSum:     outcome.nativeHighWeightSum,
		Medians:                 outcome.medians,
		RewardedVotes:           outcome.rewardedVotes,
	}
	if err := result.Validate(); err != nil {
		return types.EpochResult{}, err
	}

	st.phase = phaseFinalized
	st.result = &result

	k.metrics.EpochsFinalized.Inc()
	k.metrics.MedianPrice.Set(float64(result.MedianPrice))
	k.metrics.PriceSpread.Set(float64(result.HighPrice - result.LowPrice))
	k.metrics.VoteCount.Set(float64(len(votes)))
	k.metrics.RewardedVoters.Set(float64(len(result.RewardedVotes)))
	k.metrics.AssetRatioBips.Set(float64(ratio.Int64()))

	k.logger.Info("price epoch finalized",
		"event", types.EventTypeEpochFinalized,
		types.AttributeKeyEpochID, epochID,
		types.AttributeKeyMedianPrice, result.MedianPrice,
		types.AttributeKeyLowPrice, result.LowPrice,
		types.AttributeKeyHighPrice, result.HighPrice,
		types.AttributeKeyVoteCount, len(votes),
		types.AttributeKeyRewardedCount, len(result.RewardedVotes),
	)

	if k.hooks != nil {
		// Hook failures never unwind a finalized epoch.
		if err := k.hooks.AfterPriceEpochFinalized(epochID, result.MedianPrice, result.RewardedVotes); err != nil {
			k.logger.Error("reward hook failed",
				types.AttributeKeyEpochID, epochID,
				"error", err,
			)
		}
	}

	return result, nil
}

// failEpoch marks an epoch permanently unresolved. Callers must hold k.mu.
func (k *Keeper) failEpoch(st *epochState, epochID uint64, reason string, cause error) {
	st.phase = phaseFailed
	st.failReason = cause
	k.metrics.EpochsFailed.WithLabelValues(reason).Inc()
	k.logger.Info("price epoch failed",
		"event", types.EventTypeEpochFailed,
		types.AttributeKeyEpochID, epochID,
		types.AttributeKeyReason, reason,
		"error", cause,
	)
}
