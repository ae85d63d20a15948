package mapping

import (
	"context"
	"errors"

	"rentora/internal/domain"
	"rentora/internal/repository"
)

// Service manages property-to-listing mappings. Mapping changes are
// administrative actions outside the reconciliation hot path.
type Service struct {
	mappings   MappingRepository
	properties PropertyRepository
	pms        PMSClient
}

func NewService(mappings MappingRepository, properties PropertyRepository, pmsClient PMSClient) *Service {
	return &Service{mappings: mappings, properties: properties, pms: pmsClient}
}

// Map links a property to an external listing after verifying both ends
// exist. The storage layer enforces at most one active mapping per property.
func (s *Service) Map(ctx context.Context, propertyID int64, externalListingID string) (*domain.PropertyMapping, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	listings, err := s.pms.ListListings(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, l := range listings {
		if l.ID == externalListingID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrListingNotFound
	}

	m := &domain.PropertyMapping{
		PropertyID:        propertyID,
		ExternalListingID: externalListingID,
	}
	if err := s.mappings.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrAlreadyMapped) {
			return nil, ErrAlreadyMapped
		}
		return nil, err
	}
	return m, nil
}

// Unmap deactivates the property's active mapping; unmapping an unmapped
// property is a no-op.
func (s *Service) Unmap(ctx context.Context, propertyID int64) error {
	return s.mappings.Deactivate(ctx, propertyID)
}
