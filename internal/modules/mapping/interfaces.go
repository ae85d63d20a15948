package mapping

import (
	"context"

	"rentora/internal/domain"
	"rentora/internal/pms"
)

type MappingRepository interface {
	Create(ctx context.Context, mapping *domain.PropertyMapping) error
	Deactivate(ctx context.Context, propertyID int64) error
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

type PMSClient interface {
	ListListings(ctx context.Context) ([]pms.Listing, error)
}
