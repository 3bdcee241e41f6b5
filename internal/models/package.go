package models

import (
	"time"

	"gorm.io/gorm"
)

// Package is a bookable travel package. Pricing and capacity are
// maintained by vendor tooling; the booking flow only reads them.
type Package struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	Location     string         `json:"location"`
	DurationDays int            `json:"duration_days"`
	BasePrice    float64        `gorm:"not null" json:"base_price"`
	MaxPeople    *int           `json:"max_people"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
