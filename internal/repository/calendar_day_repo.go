package repository

import (
	"context"
	"errors"
	"time"

	"rentora/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrBookedDaysInRange rejects a manual block over a range containing a
// real booking. A manual block never overrides a booked night.
var ErrBookedDaysInRange = errors.New("range contains booked days")

type CalendarDayRepository struct {
	db *gorm.DB
}

func NewCalendarDayRepository(db *gorm.DB) *CalendarDayRepository {
	return &CalendarDayRepository{db: db}
}

type calendarDayModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	PropertyID     int64     `gorm:"column:property_id;uniqueIndex:idx_property_date"`
	Date           time.Time `gorm:"column:date;uniqueIndex:idx_property_date"`
	Status         string    `gorm:"column:status"`
	Source         string    `gorm:"column:source"`
	ReservationRef *string   `gorm:"column:reservation_ref"`
	Reason         *string   `gorm:"column:reason"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (calendarDayModel) TableName() string { return "calendar_days" }

func toDomainCalendarDay(m calendarDayModel) domain.CalendarDay {
	var reason string
	if m.Reason != nil {
		reason = *m.Reason
	}

	return domain.CalendarDay{
		ID:             m.ID,
		PropertyID:     m.PropertyID,
		Date:           domain.DateOnly(m.Date),
		Status:         domain.CalendarStatus(m.Status),
		Source:         domain.CalendarSource(m.Source),
		ReservationRef: m.ReservationRef,
		Reason:         reason,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toCalendarDayModel(d domain.CalendarDay) calendarDayModel {
	var reason *string
	if d.Reason != "" {
		v := d.Reason
		reason = &v
	}

	return calendarDayModel{
		ID:             d.ID,
		PropertyID:     d.PropertyID,
		Date:           domain.DateOnly(d.Date),
		Status:         string(d.Status),
		Source:         string(d.Source),
		ReservationRef: d.ReservationRef,
		Reason:         reason,
		UpdatedAt:      d.UpdatedAt,
	}
}

// GetRange returns the stored days for [from, to] inclusive, ordered by date.
func (r *CalendarDayRepository) GetRange(ctx context.Context, propertyID int64, from, to time.Time) ([]domain.CalendarDay, error) {
	var rows []calendarDayModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND date >= ? AND date <= ?", propertyID, domain.DateOnly(from), domain.DateOnly(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CalendarDay, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCalendarDay(m))
	}
	return out, nil
}

// UpsertDay writes one (property, date) row. The write is a single-row
// ON CONFLICT upsert, so re-applying the same target state is a no-op and
// concurrent writers cannot leave a partially written row.
func (r *CalendarDayRepository) UpsertDay(ctx context.Context, d domain.CalendarDay) error {
	m := toCalendarDayModel(d)
	m.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "source", "reservation_ref", "reason", "updated_at",
			}),
		}).
		Create(&m).Error
}

// BlockRange marks every day in [from, to] as manually blocked. The booked
// guard and the writes run in one transaction: if any day in the range is
// currently booked, ErrBookedDaysInRange is returned and nothing is mutated.
func (r *CalendarDayRepository) BlockRange(ctx context.Context, propertyID int64, from, to time.Time, reason string) (int, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)

	affected := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booked int64
		err := tx.Model(&calendarDayModel{}).
			Where("property_id = ? AND date >= ? AND date <= ? AND status = ?",
				propertyID, from, to, string(domain.CalendarBooked)).
			Count(&booked).Error
		if err != nil {
			return err
		}
		if booked > 0 {
			return ErrBookedDaysInRange
		}

		now := time.Now().UTC()
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			m := calendarDayModel{
				PropertyID: propertyID,
				Date:       d,
				Status:     string(domain.CalendarBlocked),
				Source:     string(domain.SourceManual),
				Reason:     &reason,
				UpdatedAt:  now,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "property_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"status", "source", "reservation_ref", "reason", "updated_at",
				}),
			}).Create(&m).Error
			if err != nil {
				return err
			}
			affected++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// UnblockRange returns manually blocked days in [from, to] to available.
// Days not in manual-blocked state are left untouched, so re-running the
// same unblock is a no-op.
func (r *CalendarDayRepository) UnblockRange(ctx context.Context, propertyID int64, from, to time.Time) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&calendarDayModel{}).
		Where("property_id = ? AND date >= ? AND date <= ? AND status = ? AND source = ?",
			propertyID, domain.DateOnly(from), domain.DateOnly(to),
			string(domain.CalendarBlocked), string(domain.SourceManual)).
		Updates(map[string]any{
			"status":     string(domain.CalendarAvailable),
			"source":     string(domain.SourceManual),
			"reason":     nil,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

// CountByStatus returns per-status day counts for a set of properties from
// the given date forward.
func (r *CalendarDayRepository) CountByStatus(ctx context.Context, propertyIDs []int64, from time.Time) (map[domain.CalendarStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&calendarDayModel{}).
		Select("status, COUNT(*) as count").
		Where("property_id IN ? AND date >= ?", propertyIDs, domain.DateOnly(from)).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.CalendarStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.CalendarStatus(row.Status)] = row.Count
	}
	return out, nil
}
