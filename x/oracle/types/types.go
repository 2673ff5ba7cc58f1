package types

const (
	// ModuleName defines the module name
	ModuleName = "oracle"
)

// Event types emitted by the oracle engine (used as structured log markers
// and metric label values).
const (
	EventTypePriceHashSubmitted = "price_hash_submitted"
	EventTypePriceRevealed      = "price_revealed"
	EventTypeEpochFinalized     = "epoch_finalized"
	EventTypeEpochFailed        = "epoch_failed"
	EventTypeParamsUpdated      = "params_updated"

	AttributeKeyEpochID       = "epoch_id"
	AttributeKeySubmitter     = "submitter"
	AttributeKeyPrice         = "price"
	AttributeKeyMedianPrice   = "median_price"
	AttributeKeyLowPrice      = "low_price"
	AttributeKeyHighPrice     = "high_price"
	AttributeKeyVoteCount     = "vote_count"
	AttributeKeyRewardedCount = "rewarded_count"
	AttributeKeyReason        = "reason"
)
