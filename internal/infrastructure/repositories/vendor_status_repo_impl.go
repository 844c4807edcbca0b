package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	domainRepos "vendor-onboarding.backend/internal/domain/repositories"
	"vendor-onboarding.backend/internal/infrastructure/models"
)

type VendorStatusRepository struct {
	db *gorm.DB
}

func NewVendorStatusRepository(db *gorm.DB) *VendorStatusRepository {
	return &VendorStatusRepository{db: db}
}

func (r *VendorStatusRepository) GetByVendorID(ctx context.Context, vendorID string) (*entities.VendorStatusRecord, error) {
	var m models.VendorStatus
	if err := GetDB(ctx, r.db).Where("vendor_id = ?", vendorID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *VendorStatusRepository) LinkSubmission(ctx context.Context, link domainRepos.StatusLink) error {
	updates := map[string]interface{}{
		"merchant_id": link.MerchantID,
		"updated_at":  link.UpdatedAt,
	}
	// profile and banner ids are only ever moved forward
	if link.EquipmentProfileID != nil {
		updates["equipment_profile_id"] = *link.EquipmentProfileID
	}
	if link.BannerProfileID != nil {
		updates["banner_profile_id"] = *link.BannerProfileID
	}

	result := GetDB(ctx, r.db).
		Model(&models.VendorStatus{}).
		Where("vendor_id = ?", link.VendorID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *VendorStatusRepository) Upsert(ctx context.Context, vendorID string, status entities.VendorStatus) error {
	m := &models.VendorStatus{
		VendorID:  vendorID,
		Status:    string(status),
		UpdatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vendor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(m).Error
}

func (r *VendorStatusRepository) toEntity(m *models.VendorStatus) *entities.VendorStatusRecord {
	return &entities.VendorStatusRecord{
		VendorID:           m.VendorID,
		Status:             entities.VendorStatus(m.Status),
		MerchantID:         m.MerchantID,
		EquipmentProfileID: m.EquipmentProfileID,
		BannerProfileID:    m.BannerProfileID,
		UpdatedAt:          m.UpdatedAt,
	}
}
