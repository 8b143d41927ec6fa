package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found. Ownership
	// failures on order lookups are deliberately reported as not-found so
	// callers cannot probe for existing order ids.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidArgument indicates malformed or empty input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState indicates the operation is not legal in the entity's
	// current state, e.g. cancelling a paid order.
	ErrInvalidState = errors.New("invalid state")

	// ErrBlocked indicates the account has been blocked.
	ErrBlocked = errors.New("account blocked")

	// ErrInvalidCode covers wrong, expired and already-used one-time codes.
	// The cases are intentionally indistinguishable to the caller.
	ErrInvalidCode = errors.New("invalid or expired code")

	// ErrGatewayUnavailable indicates a transient payment provider failure.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrConflict indicates a lost optimistic-concurrency race. The caller
	// should re-read and retry.
	ErrConflict = errors.New("conflicting concurrent update")
)
