package repository

import (
	"time"

	"gorm.io/gorm"
)

type organizationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (organizationModel) TableName() string { return "organizations" }

// AutoMigrate creates or updates every table the engine owns. Meant for
// local development and tests; production schema is managed externally.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&organizationModel{},
		&userModel{},
		&propertyModel{},
		&propertyMappingModel{},
		&calendarDayModel{},
		&reservationModel{},
		&syncAuditEventModel{},
	)
}
