package keeper

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/ember-oracle/ember/x/oracle/types"
)

// SubmitPriceHash records a price commitment for the epoch's submit window.
// Resubmitting overwrites the previous commitment; the last hash submitted
// before the window closes is the one a reveal must match.
func (k *Keeper) SubmitPriceHash(epochID uint64, submitter string, hash types.CommitHash, now int64) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.timing.IsSubmitOpen(epochID, now) {
		k.metrics.HashSubmissions.WithLabelValues("rejected").Inc()
		return errorsmod.Wrapf(types.ErrOutOfWindow,
			"submit window for epoch %d is [%d, %d), now %d",
			epochID, k.timing.SubmitWindowStart(epochID), k.timing.SubmitWindowEnd(epochID), now)
	}

	st := k.getOrCreateEpoch(epochID)
	st.commitments[submitter] = hash

	k.metrics.HashSubmissions.WithLabelValues("accepted").Inc()
	k.logger.Debug("price hash submitted",
		"event", types.EventTypePriceHashSubmitted,
		types.AttributeKeyEpochID, epochID,
		types.AttributeKeySubmitter, submitter,
	)
	return nil
}

// RevealPrice opens a commitment during the epoch's reveal window. The
// revealed price and random value must hash to the stored commitment. Vote
// power is resolved here, once, at the epoch's frozen snapshot height; a
// vote power lookup failure leaves the commitment intact so the submitter
// may retry within the window.
func (k *Keeper) RevealPrice(epochID uint64, submitter string, price, random uint64, now int64) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.timing.IsRevealOpen(epochID, now) {
		k.metrics.RevealRejections.WithLabelValues("out_of_window").Inc()
		return errorsmod.Wrapf(types.ErrOutOfWindow,
			"reveal window for epoch %d is [%d, %d), now %d",
			epochID, k.timing.SubmitWindowEnd(epochID), k.timing.RevealWindowEnd(epochID), now)
	}

	st, ok := k.epochs[epochID]
	if !ok {
		k.metrics.RevealRejections.WithLabelValues("unknown_commitment").Inc()
		return errorsmod.Wrapf(types.ErrUnknownCommitment, "epoch %d has no commitments", epochID)
	}
	if _, revealed := st.votes[submitter]; revealed {
		k.metrics.RevealRejections.WithLabelValues("already_revealed").Inc()
		return errorsmod.Wrapf(types.ErrAlreadyRevealed,
			"submitter %s already revealed in epoch %d", submitter, epochID)
	}
	committed, ok := st.commitments[submitter]
	if !ok {
		k.metrics.RevealRejections.WithLabelValues("unknown_commitment").Inc()
		return errorsmod.Wrapf(types.ErrUnknownCommitment,
			"submitter %s has no commitment in epoch %d", submitter, epochID)
	}
	if types.ComputeCommitHash(price, random, submitter) != committed {
		k.metrics.RevealRejections.WithLabelValues("hash_mismatch").Inc()
		return errorsmod.Wrapf(types.ErrHashMismatch,
			"reveal by %s does not match commitment in epoch %d", submitter, epochID)
	}

	native, asset, err := k.powerSource.VotePowerOf(submitter, st.snapshotHeight)
	if err != nil {
		k.metrics.RevealRejections.WithLabelValues("vote_power_unavailable").Inc()
		return errorsmod.Wrapf(err, "resolving vote power of %s at height %d", submitter, st.snapshotHeight)
	}

	st.votes[submitter] = types.Vote{
		Submitter:       submitter,
		Price:           price,
		Random:          random,
		VotePowerNative: native,
		VotePowerAsset:  asset,
	}

	k.metrics.PriceReveals.WithLabelValues("accepted").Inc()
	k.logger.Debug("price revealed",
		"event", types.EventTypePriceRevealed,
		types.AttributeKeyEpochID, epochID,
		types.AttributeKeySubmitter, submitter,
		types.AttributeKeyPrice, price,
	)
	return nil
}

// HasCommitment reports whether a submitter has a commitment in the epoch.
func (k *Keeper) HasCommitment(epochID uint64, submitter string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	st, ok := k.epochs[epochID]
	if !ok {
		return false
	}
	_, ok = st.commitments[submitter]
	return ok
}

// HasRevealed reports whether a submitter has revealed in the epoch.
func (k *Keeper) HasRevealed(epochID uint64, submitter string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	st, ok := k.epochs[epochID]
	if !ok {
		return false
	}
	_, ok = st.votes[submitter]
	return ok
}
