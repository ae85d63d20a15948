package domain

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is owned by the booking subsystem. The reconciliation engine
// reads it and records the external-sync marker, but never creates or
// cancels reservations.
type Reservation struct {
	ID               int64             `json:"id"`
	PropertyID       int64             `json:"property_id"`
	Status           ReservationStatus `json:"status"`
	CheckIn          time.Time         `json:"check_in"`
	CheckOut         time.Time         `json:"check_out"`
	ConfirmationCode string            `json:"confirmation_code"`
	ExternalRef      *string           `json:"external_ref,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Covers reports whether day falls inside the stay (check-out day excluded).
func (r Reservation) Covers(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(r.CheckIn)) && d.Before(DateOnly(r.CheckOut))
}
