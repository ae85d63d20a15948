package mapping

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrListingNotFound  = errors.New("listing not found in PMS")
	ErrAlreadyMapped    = errors.New("property already mapped")
)
