package keeper

import (
	"fmt"
	"sort"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/ember-oracle/ember/x/oracle/types"
)

// epochPhase tracks the lifecycle of a single price epoch.
type epochPhase uint8

const (
	phaseOpen epochPhase = iota
	phaseFinalized
	phaseFailed
)

// epochState is the per-epoch arena entry. Params and the vote power
// snapshot height are frozen when the epoch is first touched, so later
// updates never change an existing epoch's outcome.
type epochState struct {
	params         types.Params
	snapshotHeight int64

	commitments map[string]types.CommitHash
	votes       map[string]types.Vote

	phase      epochPhase
	failReason error
	result     *types.EpochResult
}

// Keeper maintains the state of the oracle engine. All public methods are
// safe for concurrent use; a single mutex serializes every state change so
// callers observe submits, reveals and finalization in one total order.
type Keeper struct {
	mu sync.Mutex

	timing      types.EpochTiming
	params      types.Params
	powerSource types.VotePowerSource
	hooks       types.RewardHooks
	logger      log.Logger
	metrics     *OracleMetrics

	// votePowerHeight is the snapshot height frozen into epochs at creation.
	votePowerHeight int64

	epochs map[uint64]*epochState
}

// NewKeeper creates a new oracle Keeper instance. The timing and initial
// params must already be validated; powerSource must not be nil.
func NewKeeper(
	timing types.EpochTiming,
	params types.Params,
	powerSource types.VotePowerSource,
	logger log.Logger,
) (*Keeper, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if powerSource == nil {
		return nil, errorsmod.Wrap(types.ErrVotePowerUnavailable, "vote power source is required")
	}
	return &Keeper{
		timing:      timing,
		params:      params,
		powerSource: powerSource,
		logger:      logger.With("module", fmt.Sprintf("x/%s", types.ModuleName)),
		metrics:     GetOracleMetrics(),
		epochs:      make(map[uint64]*epochState),
	}, nil
}

// SetHooks sets the reward hooks. Call before the first epoch finalizes.
func (k *Keeper) SetHooks(h types.RewardHooks) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.hooks = h
}

// Logger returns the engine logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// Timing returns the immutable epoch timing configuration.
func (k *Keeper) Timing() types.EpochTiming {
	return k.timing
}

// GetParams returns the current params, used for epochs created from now on.
func (k *Keeper) GetParams() types.Params {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.params
}

// SetParams replaces the params used for future epochs. Epochs that already
// exist keep the params frozen at their creation.
func (k *Keeper) SetParams(params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.params = params
	k.logger.Info("oracle params updated",
		"event", types.EventTypeParamsUpdated,
		"min_vote_count", params.MinVoteCount,
		"low_asset_usd_threshold", params.LowAssetUSDThreshold,
		"high_asset_usd_threshold", params.HighAssetUSDThreshold,
		"high_asset_turnout_threshold_bips", params.HighAssetTurnoutThresholdBips,
	)
	return nil
}

// SetVotePowerHeight sets the snapshot height frozen into epochs created
// from now on. Existing epochs keep the height captured at their creation.
func (k *Keeper) SetVotePowerHeight(height int64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.votePowerHeight = height
}

// GetVotePowerHeight returns the snapshot height for future epochs.
func (k *Keeper) GetVotePowerHeight() int64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.votePowerHeight
}

// getOrCreateEpoch returns the arena entry for the epoch, creating it with a
// frozen copy of the current params and snapshot height on first touch.
// Callers must hold k.mu.
func (k *Keeper) getOrCreateEpoch(epochID uint64) *epochState {
	if st, ok := k.epochs[epochID]; ok {
		return st
	}
	st := &epochState{
		params:         k.params,
		snapshotHeight: k.votePowerHeight,
		commitments:    make(map[string]types.CommitHash),
		votes:          make(map[string]types.Vote),
	}
	k.epochs[epochID] = st
	return st
}

// GetEpochResult returns the finalized result for an epoch, or false if the
// epoch has not finalized.
func (k *Keeper) GetEpochResult(epochID uint64) (types.EpochResult, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	st, ok := k.epochs[epochID]
	if !ok || st.phase != phaseFinalized {
		return types.EpochResult{}, false
	}
	return *st.result, true
}

// VotesFor returns a copy of the revealed votes for an epoch, sorted by
// submitter so the order is deterministic.
func (k *Keeper) VotesFor(epochID uint64) []types.Vote {
	k.mu.Lock()
	defer k.mu.Unlock()
	st, ok := k.epochs[epochID]
	if !ok {
		return nil
	}
	return sortedVotes(st)
}

// IterateVotes calls fn for each revealed vote of an epoch in submitter
// order, stopping early when fn returns false.
func (k *Keeper) IterateVotes(epochID uint64, fn func(types.Vote) bool) {
	for _, v := range k.VotesFor(epochID) {
		if !fn(v) {
			return
		}
	}
}

// sortedVotes snapshots an epoch's votes in submitter order. Callers must
// hold k.mu.
func sortedVotes(st *epochState) []types.Vote {
	votes := make([]types.Vote, 0, len(st.votes))
	for _, v := range st.votes {
		votes = append(votes, v)
	}
	sort.Slice(votes, func(i, j int) bool {
		return votes[i].Submitter < votes[j].Submitter
	})
	return votes
}
