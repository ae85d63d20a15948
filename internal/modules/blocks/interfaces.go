package blocks

import (
	"context"
	"time"

	"rentora/internal/domain"
)

// CalendarStore is the transactional block surface of the calendar store.
// Both operations are atomic at the storage layer: BlockRange runs its
// booked-guard and writes in one transaction, UnblockRange is a single
// conditional update.
type CalendarStore interface {
	BlockRange(ctx context.Context, propertyID int64, from, to time.Time, reason string) (int, error)
	UnblockRange(ctx context.Context, propertyID int64, from, to time.Time) (int, error)
}

type AuditRepository interface {
	Append(ctx context.Context, event *domain.SyncAuditEvent) error
}

type EventPublisher interface {
	Publish(event domain.SyncAuditEvent)
}
