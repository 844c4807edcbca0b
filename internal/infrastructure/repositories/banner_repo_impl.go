package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/infrastructure/models"
	"vendor-onboarding.backend/pkg/utils"
)

type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

// Update overwrites the banner. The row must belong to banner.MerchantID.
func (r *BannerRepository) Update(ctx context.Context, banner *entities.VendorBanner) error {
	now := time.Now()
	result := GetDB(ctx, r.db).
		Model(&models.VendorBanner{}).
		Where("id = ? AND merchant_id = ?", banner.ID, banner.MerchantID).
		Updates(map[string]interface{}{
			"banner_name": banner.BannerName,
			"theme":       string(banner.Theme),
			"accent":      string(banner.Accent),
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	banner.UpdatedAt = now
	return nil
}

// Upsert keys on merchant_id; the id of an existing row is kept and written back.
func (r *BannerRepository) Upsert(ctx context.Context, banner *entities.VendorBanner) error {
	if banner.ID == uuid.Nil {
		banner.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	m := &models.VendorBanner{
		ID:         banner.ID,
		MerchantID: banner.MerchantID,
		BannerName: banner.BannerName,
		Theme:      string(banner.Theme),
		Accent:     string(banner.Accent),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	db := GetDB(ctx, r.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "merchant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"banner_name", "theme", "accent", "updated_at"}),
	}).Create(m).Error; err != nil {
		return err
	}

	stored, err := r.GetByMerchantID(ctx, banner.MerchantID)
	if err != nil {
		return err
	}
	*banner = *stored
	return nil
}

func (r *BannerRepository) GetByMerchantID(ctx context.Context, merchantID uuid.UUID) (*entities.VendorBanner, error) {
	var m models.VendorBanner
	if err := GetDB(ctx, r.db).Where("merchant_id = ?", merchantID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.VendorBanner{
		ID:         m.ID,
		MerchantID: m.MerchantID,
		BannerName: m.BannerName,
		Theme:      entities.BannerTheme(m.Theme),
		Accent:     entities.BannerAccent(m.Accent),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}
