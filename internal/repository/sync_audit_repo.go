package repository

import (
	"context"
	"time"

	"rentora/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SyncAuditRepository struct {
	db *gorm.DB
}

func NewSyncAuditRepository(db *gorm.DB) *SyncAuditRepository {
	return &SyncAuditRepository{db: db}
}

type syncAuditEventModel struct {
	ID         string         `gorm:"column:id;primaryKey"`
	Type       string         `gorm:"column:type;index"`
	PropertyID int64          `gorm:"column:property_id;index"`
	Payload    datatypes.JSON `gorm:"column:payload"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
}

func (syncAuditEventModel) TableName() string { return "sync_audit_events" }

func toDomainAuditEvent(m syncAuditEventModel) domain.SyncAuditEvent {
	return domain.SyncAuditEvent{
		ID:         m.ID,
		Type:       m.Type,
		PropertyID: m.PropertyID,
		Payload:    m.Payload,
		CreatedAt:  m.CreatedAt,
	}
}

// Append writes one event. The log is append-only: no update or delete
// path exists on this repository.
func (r *SyncAuditRepository) Append(ctx context.Context, event *domain.SyncAuditEvent) error {
	m := syncAuditEventModel{
		ID:         event.ID,
		Type:       event.Type,
		PropertyID: event.PropertyID,
		Payload:    event.Payload,
		CreatedAt:  event.CreatedAt,
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}

	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	return nil
}

// ListRecentByProperty returns the newest events for one property.
func (r *SyncAuditRepository) ListRecentByProperty(ctx context.Context, propertyID int64, limit int) ([]domain.SyncAuditEvent, error) {
	var rows []syncAuditEventModel
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.SyncAuditEvent, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAuditEvent(m))
	}
	return out, nil
}

// ListRecentByProperties returns the newest events across a property set,
// used by the organization statistics view.
func (r *SyncAuditRepository) ListRecentByProperties(ctx context.Context, propertyIDs []int64, limit int) ([]domain.SyncAuditEvent, error) {
	var rows []syncAuditEventModel
	err := r.db.WithContext(ctx).
		Where("property_id IN ?", propertyIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.SyncAuditEvent, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAuditEvent(m))
	}
	return out, nil
}
