package game

import "errors"

var (
	ErrInvalidBet          = errors.New("invalid bet")
	ErrInvalidParams       = errors.New("invalid game parameters")
	ErrNoActiveRound       = errors.New("no active round")
	ErrNotOwner            = errors.New("round belongs to another user")
	ErrInvalidAction       = errors.New("action not allowed in current phase")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRoundNotFound is returned by a RoundStore for a missing key.
	ErrRoundNotFound = errors.New("round not found")
	// ErrRoundConflict is returned by RoundStore.Swap when the stored round
	// is not the expected one.
	ErrRoundConflict = errors.New("round changed concurrently")
)
