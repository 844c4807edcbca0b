package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type EquipmentProfile struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	MerchantID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	VendorID          string      `gorm:"type:varchar(14);not null"`
	Outlets110        int         `gorm:"column:outlets110;not null;default:0"`
	Outlets220        int         `gorm:"column:outlets220;not null;default:0"`
	OtherOutletsQty   int         `gorm:"not null;default:0"`
	OtherOutletsLabel null.String `gorm:"type:varchar(120)"`
	Notes             null.String `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (EquipmentProfile) TableName() string {
	return "equipment_profiles"
}

type EquipmentItem struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	EquipmentProfileID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name               string    `gorm:"type:varchar(120);not null"`
	Qty                int       `gorm:"not null"`
	Position           int       `gorm:"not null"`
}

func (EquipmentItem) TableName() string {
	return "equipment_items"
}
