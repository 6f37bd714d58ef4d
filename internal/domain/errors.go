package domain

import (
	"errors"
	"fmt"
)

// Service-level error taxonomy. Every failure a service returns wraps one of
// these sentinels so callers can branch with errors.Is.
var (
	// ErrUnauthenticated is returned when no identity is resolved at call time.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrNotFound is returned when a record id does not exist under the
	// caller's tenant. Ids owned by another tenant are indistinguishable
	// from non-existent ones.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when a payload fails validation before it
	// reaches the store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState is returned when an operation is not legal for the
	// record's current lifecycle state.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrStoreUnavailable is returned when the record store fails for
	// reasons opaque to the caller (network, quota, outage).
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// DecodeError reports a store payload that could not be decoded into its
// entity shape. The raw document is never trusted past this boundary.
type DecodeError struct {
	Collection string
	DocID      string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s/%s: %v", e.Collection, e.DocID, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
