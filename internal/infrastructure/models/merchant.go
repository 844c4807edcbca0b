package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Merchant struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	PdvName         string      `gorm:"type:varchar(255);not null"`
	PersonType      string      `gorm:"type:varchar(2);not null"`
	CpfCnpj         string      `gorm:"column:cpf_cnpj;type:varchar(14);not null;index"`
	FullName        string      `gorm:"type:varchar(255);not null"`
	Email           null.String `gorm:"type:varchar(255)"`
	Phone           null.String `gorm:"type:varchar(32)"`
	AddressFull     null.String `gorm:"type:text"`
	AddressCity     null.String `gorm:"type:varchar(120)"`
	AddressState    null.String `gorm:"type:varchar(32)"`
	AddressZipcode  null.String `gorm:"type:varchar(16)"`
	BankAccountType null.String `gorm:"type:varchar(16)"`
	BankName        null.String `gorm:"type:varchar(120)"`
	BankAgency      null.String `gorm:"type:varchar(16)"`
	BankAccount     null.String `gorm:"type:varchar(32)"`
	BankHolderDoc   null.String `gorm:"type:varchar(14)"`
	BankHolderName  null.String `gorm:"type:varchar(255)"`
	PixKey          null.String `gorm:"type:varchar(255)"`
	MachinesQty     int         `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Merchant) TableName() string {
	return "merchants"
}
