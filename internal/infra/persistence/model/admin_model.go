package model

import "time"

// AdminModel is the GORM-specific struct for the 'admins' table, an
// email allow-list for management endpoints.
type AdminModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminModel) TableName() string {
	return "admins"
}
