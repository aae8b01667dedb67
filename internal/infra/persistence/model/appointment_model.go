// Package model contains the GORM-specific structs for the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentModel is the GORM-specific struct for the 'appointments'
// table. The unique index on cal_event_uid is the de-duplication guard;
// the date/time string columns mirror start_time for the reminder
// queries, which operate on the older schema generation.
type AppointmentModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID       *int64    `gorm:"index"`
	ServiceName     string    `gorm:"size:255"`
	CalEventUID     string    `gorm:"size:255;not null;uniqueIndex"`
	StartTime       time.Time `gorm:"not null"`
	EndTime         *time.Time
	Date            string `gorm:"size:10;not null;index:idx_appointments_date_time"`
	Time            string `gorm:"size:5;not null;index:idx_appointments_date_time"`
	Status          string `gorm:"size:20;not null;default:confirmed;index"`
	PaymentStatus   string `gorm:"size:20"`
	StripeSessionID string `gorm:"size:255"`
	AmountPaid      float64
	Reminder1DSent  bool `gorm:"column:reminder_1d_sent;not null;default:false"`
	Reminder1HSent  bool `gorm:"column:reminder_1h_sent;not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (AppointmentModel) TableName() string {
	return "appointments"
}
