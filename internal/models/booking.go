package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Booking is a reservation of a package for a date range. It is owned
// either by a user (UserID set) or by an anonymous guest (guest contact
// fields set) - never both. Rows are never hard-deleted; cancellation
// is a status change.
type Booking struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          *uint          `gorm:"index" json:"user_id"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PackageID       uint           `gorm:"not null;index" json:"package_id"`
	Package         *Package       `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	TotalPeople     int            `gorm:"not null" json:"total_people"`
	StartDate       time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time      `gorm:"type:date;not null" json:"end_date"`
	Status          string         `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	PaymentStatus   string         `gorm:"not null;default:'pending'" json:"payment_status"`
	PaymentDetails  JSONB          `gorm:"type:jsonb" json:"payment_details"`
	SpecialRequests string         `json:"special_requests"`
	GuestName       *string        `json:"guest_name"`
	GuestEmail      *string        `json:"guest_email"`
	GuestPhone      *string        `json:"guest_phone"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
