package model

// ServiceModel is the GORM-specific struct for the 'services' table.
type ServiceModel struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	Name     string  `gorm:"size:255;not null;uniqueIndex"`
	Duration int     `gorm:"not null"`
	Price    float64 `gorm:"type:decimal(10,2);not null"`
	Category string  `gorm:"size:50;index"`
}

// TableName explicitly sets the table name for GORM.
func (ServiceModel) TableName() string {
	return "services"
}
