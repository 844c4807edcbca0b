package models

import (
	"time"

	"github.com/google/uuid"
)

type VendorStatus struct {
	VendorID           string     `gorm:"column:vendor_id;type:varchar(14);primaryKey"`
	Status             string     `gorm:"type:varchar(32);not null"`
	MerchantID         *uuid.UUID `gorm:"type:uuid"`
	EquipmentProfileID *uuid.UUID `gorm:"type:uuid"`
	BannerProfileID    *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt          time.Time
}

func (VendorStatus) TableName() string {
	return "vendor_status"
}
