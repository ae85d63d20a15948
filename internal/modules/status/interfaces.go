package status

import (
	"context"
	"time"

	"rentora/internal/domain"
	"rentora/internal/pms"
)

type MappingRepository interface {
	GetActiveByPropertyID(ctx context.Context, propertyID int64) (*domain.PropertyMapping, error)
	CountActiveByOrganization(ctx context.Context, organizationID int64) (int64, error)
}

type AuditRepository interface {
	ListRecentByProperty(ctx context.Context, propertyID int64, limit int) ([]domain.SyncAuditEvent, error)
	ListRecentByProperties(ctx context.Context, propertyIDs []int64, limit int) ([]domain.SyncAuditEvent, error)
}

type CalendarRepository interface {
	CountByStatus(ctx context.Context, propertyIDs []int64, from time.Time) (map[domain.CalendarStatus]int64, error)
}

type PropertyRepository interface {
	ListByOrganization(ctx context.Context, organizationID int64) ([]domain.Property, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) pms.Health
}
