package sync

import "errors"

// ErrNotMapped is terminal for a property: it has no active external
// listing mapping and is excluded from reconciliation.
var ErrNotMapped = errors.New("property is not mapped to an external listing")

// Result error codes, stable across the trigger surface.
const (
	CodeNotMapped      = "NOT_MAPPED"
	CodePMSUnavailable = "PMS_UNAVAILABLE"
	CodePMSRejected    = "PMS_REJECTED"
	CodeInternal       = "INTERNAL_ERROR"
)
