package status

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentora/internal/domain"
	"rentora/internal/pms"
	"rentora/internal/repository"
)

// Service is a pure read projection over the engine's durable state. It
// performs no writes.
type Service struct {
	mappings   MappingRepository
	audit      AuditRepository
	calendar   CalendarRepository
	properties PropertyRepository
	health     HealthChecker

	recentLimit int
}

func NewService(
	mappings MappingRepository,
	audit AuditRepository,
	calendar CalendarRepository,
	properties PropertyRepository,
	health HealthChecker,
	recentLimit int,
) *Service {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Service{
		mappings:    mappings,
		audit:       audit,
		calendar:    calendar,
		properties:  properties,
		health:      health,
		recentLimit: recentLimit,
	}
}

func (s *Service) GetSyncStatus(ctx context.Context, propertyID int64) (*PropertySyncStatus, error) {
	out := &PropertySyncStatus{PropertyID: propertyID}

	mapping, err := s.mappings.GetActiveByPropertyID(ctx, propertyID)
	switch {
	case err == nil:
		out.Mapped = true
		out.ExternalListingID = mapping.ExternalListingID
	case errors.Is(err, repository.ErrMappingNotFound):
		// Unmapped properties still have a status view.
	default:
		return nil, err
	}

	events, err := s.audit.ListRecentByProperty(ctx, propertyID, s.recentLimit)
	if err != nil {
		return nil, err
	}
	out.RecentEvents = events
	for _, e := range events {
		if strings.HasPrefix(e.Type, "calendar.sync.") {
			out.LastSync = &LastSync{Type: e.Type, At: e.CreatedAt}
			break
		}
	}

	counts, err := s.calendar.CountByStatus(ctx, []int64{propertyID}, domain.DateOnly(time.Now()))
	if err != nil {
		return nil, err
	}
	out.DayCounts = counts

	return out, nil
}

func (s *Service) GetOrganizationStats(ctx context.Context, organizationID int64) (*OrganizationStats, error) {
	properties, err := s.properties.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	out := &OrganizationStats{
		OrganizationID:  organizationID,
		PropertiesCount: len(properties),
		DayCounts:       map[domain.CalendarStatus]int64{},
		RecentEvents:    []domain.SyncAuditEvent{},
	}

	out.MappedCount, err = s.mappings.CountActiveByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if len(properties) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}

	out.DayCounts, err = s.calendar.CountByStatus(ctx, ids, domain.DateOnly(time.Now()))
	if err != nil {
		return nil, err
	}

	out.RecentEvents, err = s.audit.ListRecentByProperties(ctx, ids, s.recentLimit)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) PMSHealth(ctx context.Context) pms.Health {
	return s.health.HealthCheck(ctx)
}
