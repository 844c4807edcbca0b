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

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) CreateProfile(ctx context.Context, profile *entities.EquipmentProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = utils.GenerateUUIDv7()
	}
	m := r.toProfileModel(profile)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	profile.CreatedAt = m.CreatedAt
	profile.UpdatedAt = m.UpdatedAt
	return nil
}

// UpdateProfile overwrites the profile. The row must belong to profile.MerchantID.
func (r *EquipmentRepository) UpdateProfile(ctx context.Context, profile *entities.EquipmentProfile) error {
	updates := map[string]interface{}{
		"vendor_id":           profile.VendorID,
		"outlets110":          profile.Outlets110,
		"outlets220":          profile.Outlets220,
		"other_outlets_qty":   profile.OtherOutletsQty,
		"other_outlets_label": profile.OtherOutletsLabel,
		"notes":               profile.Notes,
		"updated_at":          time.Now(),
	}
	result := GetDB(ctx, r.db).
		Model(&models.EquipmentProfile{}).
		Where("id = ? AND merchant_id = ?", profile.ID, profile.MerchantID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) GetProfile(ctx context.Context, id uuid.UUID) (*entities.EquipmentProfile, error) {
	var m models.EquipmentProfile
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toProfileEntity(&m), nil
}

func (r *EquipmentRepository) ListItems(ctx context.Context, profileID uuid.UUID) ([]*entities.EquipmentItem, error) {
	var ms []models.EquipmentItem
	if err := GetDB(ctx, r.db).
		Where("equipment_profile_id = ?", profileID).
		Order("position ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.EquipmentItem, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.EquipmentItem{
			ID:                 ms[i].ID,
			EquipmentProfileID: ms[i].EquipmentProfileID,
			Name:               ms[i].Name,
			Qty:                ms[i].Qty,
			Position:           ms[i].Position,
		})
	}
	return items, nil
}

// ReplaceItems deletes every item of the profile and inserts items.
// Callers wanting atomicity run it inside a UnitOfWork.
func (r *EquipmentRepository) ReplaceItems(ctx context.Context, profileID uuid.UUID, items []*entities.EquipmentItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("equipment_profile_id = ?", profileID).Delete(&models.EquipmentItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	ms := make([]models.EquipmentItem, 0, len(items))
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = utils.GenerateUUIDv7()
		}
		ms = append(ms, models.EquipmentItem{
			ID:                 it.ID,
			EquipmentProfileID: profileID,
			Name:               it.Name,
			Qty:                it.Qty,
			Position:           it.Position,
		})
	}
	return db.Create(&ms).Error
}

func (r *EquipmentRepository) toProfileModel(e *entities.EquipmentProfile) *models.EquipmentProfile {
	return &models.EquipmentProfile{
		ID:                e.ID,
		MerchantID:        e.MerchantID,
		VendorID:          e.VendorID,
		Outlets110:        e.Outlets110,
		Outlets220:        e.Outlets220,
		OtherOutletsQty:   e.OtherOutletsQty,
		OtherOutletsLabel: e.OtherOutletsLabel,
		Notes:             e.Notes,
	}
}

func (r *EquipmentRepository) toProfileEntity(m *models.EquipmentProfile) *entities.EquipmentProfile {
	return &entities.EquipmentProfile{
		ID:                m.ID,
		MerchantID:        m.MerchantID,
		VendorID:          m.VendorID,
		Outlets110:        m.Outlets110,
		Outlets220:        m.Outlets220,
		OtherOutletsQty:   m.OtherOutletsQty,
		OtherOutletsLabel: m.OtherOutletsLabel,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
