package repository

import (
	"context"
	"time"

	"rentora/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	PropertyID       int64     `gorm:"column:property_id;index"`
	Status           string    `gorm:"column:status"`
	CheckIn          time.Time `gorm:"column:check_in"`
	CheckOut         time.Time `gorm:"column:check_out"`
	ConfirmationCode string    `gorm:"column:confirmation_code"`
	ExternalRef      *string   `gorm:"column:external_ref"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) domain.Reservation {
	return domain.Reservation{
		ID:               m.ID,
		PropertyID:       m.PropertyID,
		Status:           domain.ReservationStatus(m.Status),
		CheckIn:          m.CheckIn,
		CheckOut:         m.CheckOut,
		ConfirmationCode: m.ConfirmationCode,
		ExternalRef:      m.ExternalRef,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// GetConfirmedOverlapping returns confirmed reservations whose stay
// intersects [from, to]. Reservation rows are foreign state owned by the
// booking subsystem; this repository only reads them and records the
// external-sync marker.
func (r *ReservationRepository) GetConfirmedOverlapping(ctx context.Context, propertyID int64, from, to time.Time) ([]domain.Reservation, error) {
	var rows []reservationModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ? AND check_in <= ? AND check_out > ?",
			propertyID, string(domain.ReservationConfirmed), domain.DateOnly(to), domain.DateOnly(from)).
		Order("check_in ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReservation(m))
	}
	return out, nil
}

// MarkExternallySynced records the PMS reference on a reservation. The
// write is idempotent: a reservation already carrying a ref is untouched.
func (r *ReservationRepository) MarkExternallySynced(ctx context.Context, reservationID int64, externalRef string) error {
	return r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ? AND external_ref IS NULL", reservationID).
		Updates(map[string]any{"external_ref": externalRef, "updated_at": time.Now().UTC()}).Error
}
