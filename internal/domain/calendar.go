package domain

import "time"

type CalendarStatus string

const (
	CalendarAvailable CalendarStatus = "available"
	CalendarBlocked   CalendarStatus = "blocked"
	CalendarBooked    CalendarStatus = "booked"
)

type CalendarSource string

const (
	SourceManual              CalendarSource = "manual"
	SourceExternalPMS         CalendarSource = "external_pms"
	SourceInternalReservation CalendarSource = "internal_reservation"
)

// CalendarDay is the authoritative local state of one property-night.
// There is exactly one row per (property_id, date); date carries no time
// component and is stored at midnight UTC.
type CalendarDay struct {
	ID             int64          `json:"id"`
	PropertyID     int64          `json:"property_id" validate:"required"`
	Date           time.Time      `json:"date" validate:"required"`
	Status         CalendarStatus `json:"status"`
	Source         CalendarSource `json:"source"`
	ReservationRef *string        `json:"reservation_ref,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// DateOnly truncates t to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
