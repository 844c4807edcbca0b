package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/infrastructure/models"
	"vendor-onboarding.backend/pkg/utils"
)

// MerchantRepository implements merchant data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create inserts the merchant; a nil ID is filled in.
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	if merchant.ID == uuid.Nil {
		merchant.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(merchant)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	merchant.CreatedAt = m.CreatedAt
	merchant.UpdatedAt = m.UpdatedAt
	return nil
}

// Update overwrites every column. The row must match both id and document.
func (r *MerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	now := time.Now()
	updates := map[string]interface{}{
		"pdv_name":          merchant.PdvName,
		"person_type":       string(merchant.PersonType),
		"full_name":         merchant.FullName,
		"email":             merchant.Email,
		"phone":             merchant.Phone,
		"address_full":      merchant.AddressFull,
		"address_city":      merchant.AddressCity,
		"address_state":     merchant.AddressState,
		"address_zipcode":   merchant.AddressZipcode,
		"bank_account_type": merchant.BankAccountType,
		"bank_name":         merchant.BankName,
		"bank_agency":       merchant.BankAgency,
		"bank_account":      merchant.BankAccount,
		"bank_holder_doc":   merchant.BankHolderDoc,
		"bank_holder_name":  merchant.BankHolderName,
		"pix_key":           merchant.PixKey,
		"machines_qty":      merchant.MachinesQty,
		"updated_at":        now,
	}

	result := GetDB(ctx, r.db).
		Model(&models.Merchant{}).
		Where("id = ? AND cpf_cnpj = ?", merchant.ID, merchant.CpfCnpj).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	merchant.UpdatedAt = now
	return nil
}

// GetByID gets a merchant by ID
func (r *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByTaxDocument returns the oldest merchant created for the document
func (r *MerchantRepository) GetByTaxDocument(ctx context.Context, cpfCnpj string) (*entities.Merchant, error) {
	var m models.Merchant
	if err := GetDB(ctx, r.db).
		Where("cpf_cnpj = ?", cpfCnpj).
		Order("created_at ASC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *MerchantRepository) toModel(e *entities.Merchant) *models.Merchant {
	return &models.Merchant{
		ID:              e.ID,
		PdvName:         e.PdvName,
		PersonType:      string(e.PersonType),
		CpfCnpj:         e.CpfCnpj,
		FullName:        e.FullName,
		Email:           e.Email,
		Phone:           e.Phone,
		AddressFull:     e.AddressFull,
		AddressCity:     e.AddressCity,
		AddressState:    e.AddressState,
		AddressZipcode:  e.AddressZipcode,
		BankAccountType: e.BankAccountType,
		BankName:        e.BankName,
		BankAgency:      e.BankAgency,
		BankAccount:     e.BankAccount,
		BankHolderDoc:   e.BankHolderDoc,
		BankHolderName:  e.BankHolderName,
		PixKey:          e.PixKey,
		MachinesQty:     e.MachinesQty,
	}
}

func (r *MerchantRepository) toEntity(m *models.Merchant) *entities.Merchant {
	return &entities.Merchant{
		ID:              m.ID,
		PdvName:         m.PdvName,
		PersonType:      entities.PersonType(m.PersonType),
		CpfCnpj:         m.CpfCnpj,
		FullName:        m.FullName,
		Email:           m.Email,
		Phone:           m.Phone,
		AddressFull:     m.AddressFull,
		AddressCity:     m.AddressCity,
		AddressState:    m.AddressState,
		AddressZipcode:  m.AddressZipcode,
		BankAccountType: m.BankAccountType,
		BankName:        m.BankName,
		BankAgency:      m.BankAgency,
		BankAccount:     m.BankAccount,
		BankHolderDoc:   m.BankHolderDoc,
		BankHolderName:  m.BankHolderName,
		PixKey:          m.PixKey,
		MachinesQty:     m.MachinesQty,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
