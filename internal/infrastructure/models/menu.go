package models

import (
	"time"

	"github.com/google/uuid"
)

type MenuCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(120);not null"`
	Position   int       `gorm:"not null"`
	IsActive   bool      `gorm:"not null"`
	CreatedAt  time.Time
}

func (MenuCategory) TableName() string {
	return "menu_categories"
}

type MenuProduct struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(40);not null"`
	PriceCents int64     `gorm:"not null"`
	Position   int       `gorm:"not null"`
	IsActive   bool      `gorm:"not null"`
	CreatedAt  time.Time
}

func (MenuProduct) TableName() string {
	return "menu_products"
}
