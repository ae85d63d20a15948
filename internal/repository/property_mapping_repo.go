package repository

import (
	"context"
	"errors"
	"time"

	"rentora/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrMappingNotFound = errors.New("property mapping not found")
	ErrAlreadyMapped   = errors.New("property already has an active mapping")
)

type PropertyMappingRepository struct {
	db *gorm.DB
}

func NewPropertyMappingRepository(db *gorm.DB) *PropertyMappingRepository {
	return &PropertyMappingRepository{db: db}
}

type propertyMappingModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	PropertyID        int64     `gorm:"column:property_id;uniqueIndex:idx_active_mapping,where:active"`
	ExternalListingID string    `gorm:"column:external_listing_id"`
	Active            bool      `gorm:"column:active"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (propertyMappingModel) TableName() string { return "property_mappings" }

func toDomainMapping(m propertyMappingModel) *domain.PropertyMapping {
	return &domain.PropertyMapping{
		ID:                m.ID,
		PropertyID:        m.PropertyID,
		ExternalListingID: m.ExternalListingID,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// GetActiveByPropertyID resolves the property's current external listing.
// A single reconciliation pass reads the mapping exactly once, so the
// mapping cannot change underneath a pass that is already running.
func (r *PropertyMappingRepository) GetActiveByPropertyID(ctx context.Context, propertyID int64) (*domain.PropertyMapping, error) {
	var m propertyMappingModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND active = ?", propertyID, true).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMappingNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainMapping(m), nil
}

// ListActiveByOrganization returns the active mappings of every property in
// the organization, the orchestrator's work list.
func (r *PropertyMappingRepository) ListActiveByOrganization(ctx context.Context, organizationID int64) ([]domain.PropertyMapping, error) {
	var rows []propertyMappingModel
	err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = property_mappings.property_id").
		Where("properties.organization_id = ? AND property_mappings.active = ?", organizationID, true).
		Order("property_mappings.property_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.PropertyMapping, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMapping(m))
	}
	return out, nil
}

// Create inserts a new active mapping. The partial unique index on
// (property_id) WHERE active rejects a second active mapping; the
// unique-violation errors of both drivers map to ErrAlreadyMapped.
func (r *PropertyMappingRepository) Create(ctx context.Context, mapping *domain.PropertyMapping) error {
	m := propertyMappingModel{
		PropertyID:        mapping.PropertyID,
		ExternalListingID: mapping.ExternalListingID,
		Active:            true,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyMapped
		}
		return err
	}

	mapping.ID = m.ID
	mapping.Active = true
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	return false
}

// Deactivate retires the property's active mapping. Deactivating an
// unmapped property is a no-op.
func (r *PropertyMappingRepository) Deactivate(ctx context.Context, propertyID int64) error {
	return r.db.WithContext(ctx).
		Model(&propertyMappingModel{}).
		Where("property_id = ? AND active = ?", propertyID, true).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()}).Error
}

// CountActiveByOrganization is used by the organization statistics view.
func (r *PropertyMappingRepository) CountActiveByOrganization(ctx context.Context, organizationID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&propertyMappingModel{}).
		Joins("JOIN properties ON properties.id = property_mappings.property_id").
		Where("properties.organization_id = ? AND property_mappings.active = ?", organizationID, true).
		Count(&n).Error
	return n, err
}
