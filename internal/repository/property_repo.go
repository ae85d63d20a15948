package repository

import (
	"context"
	"errors"
	"time"

	"rentora/internal/domain"

	"gorm.io/gorm"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	OrganizationID int64      `gorm:"column:organization_id;index"`
	Name           string     `gorm:"column:name"`
	Address        *string    `gorm:"column:address"`
	City           *string    `gorm:"column:city"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	var address, city string
	if m.Address != nil {
		address = *m.Address
	}
	if m.City != nil {
		city = *m.City
	}

	return &domain.Property{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Address:        address,
		City:           city,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      m.DeletedAt,
	}
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]domain.Property, error) {
	var rows []propertyModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND deleted_at IS NULL", organizationID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}
