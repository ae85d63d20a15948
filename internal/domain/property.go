package domain

import "time"

type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Property struct {
	ID             int64      `json:"id"`
	OrganizationID int64      `json:"organization_id" validate:"required"`
	Name           string     `json:"name"`
	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}
