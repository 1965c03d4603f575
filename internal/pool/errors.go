package pool

import "errors"

var (
	// ErrNotInitialized is returned when the registry is built without a dependency.
	ErrNotInitialized = errors.New("registry not initialized")
	// ErrPoolNotFound is returned when a pool id is unknown.
	ErrPoolNotFound = errors.New("pool not found")
	// ErrInvalidStatus is returned when an operation does not apply in the
	// pool's current lifecycle state.
	ErrInvalidStatus = errors.New("invalid pool status")
	// ErrZeroAmount is returned when a contribution moves nothing.
	ErrZeroAmount = errors.New("amount must be positive")
	// ErrNotAuthorized is returned when the caller lacks the right to act.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotMember is returned when the caller is not a recognized participant.
	ErrNotMember = errors.New("not a member")
	// ErrNotWhitelisted is returned when the caller fails the compliance check.
	ErrNotWhitelisted = errors.New("not whitelisted")
	// ErrGoalNotMet is returned when finalize runs before the target is reached.
	ErrGoalNotMet = errors.New("funding goal not met")
	// ErrAlreadyClaimed is returned on a second claim by the same contributor.
	ErrAlreadyClaimed = errors.New("repayment already claimed")
	// ErrNoRepayment is returned when there is nothing to claim or sweep.
	ErrNoRepayment = errors.New("no repayment available")
	// ErrDustShare is returned when a contributor's share rounds to zero.
	ErrDustShare = errors.New("share rounds to zero")
	// ErrInvalidRate is returned when the interest rate exceeds 10000 bps.
	ErrInvalidRate = errors.New("interest rate out of range")
	// ErrBatchTooLarge is returned when a claim batch exceeds the cap.
	ErrBatchTooLarge = errors.New("claim batch too large")
	// ErrAmountOverflow is returned when a money computation leaves uint64.
	ErrAmountOverflow = errors.New("amount overflow")
	// ErrInsufficientFunds is returned when the caller cannot cover a transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
