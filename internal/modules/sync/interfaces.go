package sync

import (
	"context"
	"time"

	"rentora/internal/domain"
	"rentora/internal/pms"
)

// CalendarRepository is the engine's view of the calendar store.
type CalendarRepository interface {
	GetRange(ctx context.Context, propertyID int64, from, to time.Time) ([]domain.CalendarDay, error)
	UpsertDay(ctx context.Context, d domain.CalendarDay) error
}

// MappingRepository resolves properties to external listings.
type MappingRepository interface {
	GetActiveByPropertyID(ctx context.Context, propertyID int64) (*domain.PropertyMapping, error)
	ListActiveByOrganization(ctx context.Context, organizationID int64) ([]domain.PropertyMapping, error)
}

// ReservationRepository reads the booking subsystem's reservations and
// records the external-sync marker.
type ReservationRepository interface {
	GetConfirmedOverlapping(ctx context.Context, propertyID int64, from, to time.Time) ([]domain.Reservation, error)
	MarkExternallySynced(ctx context.Context, reservationID int64, externalRef string) error
}

// AuditRepository appends to the sync audit log.
type AuditRepository interface {
	Append(ctx context.Context, event *domain.SyncAuditEvent) error
}

// PMSClient is the remote read surface the engine needs.
type PMSClient interface {
	GetListingCalendar(ctx context.Context, externalID string, from, to time.Time) ([]pms.CalendarDay, error)
	GetListingReservations(ctx context.Context, externalID string, from time.Time) ([]pms.Reservation, error)
}

// EventPublisher pushes audit events to live dashboard connections.
// Publishing is fire-and-forget; a nil publisher disables it.
type EventPublisher interface {
	Publish(event domain.SyncAuditEvent)
}
