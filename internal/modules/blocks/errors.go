package blocks

import "errors"

var (
	// ErrValidation rejects a malformed date range before anything is read
	// or written.
	ErrValidation = errors.New("invalid block request")

	// ErrConflict rejects a manual block over a booked night. A host block
	// never overrides a real reservation.
	ErrConflict = errors.New("range contains booked days")
)
