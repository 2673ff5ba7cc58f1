package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Oracle engine sentinel errors.
var (
	// Window violations (recoverable, caller may retry in a later epoch)
	ErrOutOfWindow = sdkerrors.Register(ModuleName, 2, "operation outside allowed window")

	// Integrity violations (recoverable, reject the single call)
	ErrUnknownCommitment = sdkerrors.Register(ModuleName, 3, "no commitment for submitter in epoch")
	ErrHashMismatch      = sdkerrors.Register(ModuleName, 4, "revealed price does not match commitment hash")
	ErrAlreadyRevealed   = sdkerrors.Register(ModuleName, 5, "price already revealed for epoch")

	// Finalization failures
	ErrInsufficientVotes  = sdkerrors.Register(ModuleName, 6, "epoch has insufficient number of votes")
	ErrInsufficientWeight = sdkerrors.Register(ModuleName, 7, "epoch has zero total vote weight")
	ErrAlreadyFinalized   = sdkerrors.Register(ModuleName, 8, "epoch already finalized")
	ErrEpochUnresolvable  = sdkerrors.Register(ModuleName, 9, "epoch permanently unresolved")

	// Configuration errors (fatal at setup)
	ErrInvalidTiming    = sdkerrors.Register(ModuleName, 10, "invalid epoch timing configuration")
	ErrInvalidThreshold = sdkerrors.Register(ModuleName, 11, "invalid threshold")

	// External lookup errors
	ErrVotePowerUnavailable = sdkerrors.Register(ModuleName, 12, "vote power snapshot unavailable")

	// State errors
	ErrStateCorruption = sdkerrors.Register(ModuleName, 13, "state corruption detected")
)
