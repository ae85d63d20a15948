package domain

import "time"

// PropertyMapping links a local property to its listing in the external PMS.
// Only mapped properties participate in calendar reconciliation; a property
// has at most one active mapping at a time.
type PropertyMapping struct {
	ID                int64     `json:"id"`
	PropertyID        int64     `json:"property_id" validate:"required"`
	ExternalListingID string    `json:"external_listing_id" validate:"required"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
