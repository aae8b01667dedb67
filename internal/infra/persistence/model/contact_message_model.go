package model

import "time"

// ContactMessageModel is the GORM-specific struct for the
// 'contact_messages' table.
type ContactMessageModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:255"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}
