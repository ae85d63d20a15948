package status

import (
	"time"

	"rentora/internal/domain"
)

type LastSync struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

type PropertySyncStatus struct {
	PropertyID        int64                           `json:"property_id"`
	Mapped            bool                            `json:"mapped"`
	ExternalListingID string                          `json:"external_listing_id,omitempty"`
	LastSync          *LastSync                       `json:"last_sync,omitempty"`
	DayCounts         map[domain.CalendarStatus]int64 `json:"day_counts"`
	RecentEvents      []domain.SyncAuditEvent         `json:"recent_events"`
}

type OrganizationStats struct {
	OrganizationID  int64                           `json:"organization_id"`
	PropertiesCount int                             `json:"properties_count"`
	MappedCount     int64                           `json:"mapped_count"`
	DayCounts       map[domain.CalendarStatus]int64 `json:"day_counts"`
	RecentEvents    []domain.SyncAuditEvent         `json:"recent_events"`
}
