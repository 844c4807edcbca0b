package models

import (
	"time"

	"github.com/google/uuid"
)

type VendorBanner struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BannerName string    `gorm:"type:varchar(28);not null"`
	Theme      string    `gorm:"type:varchar(16);not null;default:'classic'"`
	Accent     string    `gorm:"type:varchar(16);not null;default:'orange'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (VendorBanner) TableName() string {
	return "vendor_banners"
}
