package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventSyncCompleted     = "calendar.sync.completed"
	EventSyncFailed        = "calendar.sync.failed"
	EventBlockApplied      = "calendar.block.applied"
	EventBlockRemoved      = "calendar.block.removed"
	EventReservationSynced = "boom.reservation.synced"
)

// SyncAuditEvent is an append-only record of one completed engine operation.
// Rows are never mutated after Append.
type SyncAuditEvent struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	PropertyID int64          `json:"property_id"`
	Payload    datatypes.JSON `json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
}
