package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vendor-onboarding.backend/internal/domain/entities"
	"vendor-onboarding.backend/internal/infrastructure/models"
	"vendor-onboarding.backend/pkg/utils"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// InsertSections inserts each category followed by its products
func (r *MenuRepository) InsertSections(ctx context.Context, sections []entities.MenuSection) error {
	db := GetDB(ctx, r.db)
	for _, s := range sections {
		cat := r.toCategoryModel(s.Category)
		if err := db.Create(cat).Error; err != nil {
			return err
		}
		s.Category.ID = cat.ID
		s.Category.CreatedAt = cat.CreatedAt

		if len(s.Products) == 0 {
			continue
		}
		prods := make([]models.MenuProduct, 0, len(s.Products))
		for _, p := range s.Products {
			p.CategoryID = cat.ID
			prods = append(prods, *r.toProductModel(p))
		}
		if err := db.Create(&prods).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceMenu deletes products, then categories, then inserts sections.
func (r *MenuRepository) ReplaceMenu(ctx context.Context, merchantID uuid.UUID, sections []entities.MenuSection) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("merchant_id = ?", merchantID).Delete(&models.MenuProduct{}).Error; err != nil {
		return err
	}
	if err := db.Where("merchant_id = ?", merchantID).Delete(&models.MenuCategory{}).Error; err != nil {
		return err
	}
	return r.InsertSections(ctx, sections)
}

func (r *MenuRepository) ListCategories(ctx context.Context, merchantID uuid.UUID) ([]*entities.MenuCategory, error) {
	var ms []models.MenuCategory
	if err := GetDB(ctx, r.db).
		Where("merchant_id = ?", merchantID).
		Order("position ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.MenuCategory, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.MenuCategory{
			ID:         ms[i].ID,
			MerchantID: ms[i].MerchantID,
			Name:       ms[i].Name,
			Position:   ms[i].Position,
			IsActive:   ms[i].IsActive,
			CreatedAt:  ms[i].CreatedAt,
		})
	}
	return items, nil
}

func (r *MenuRepository) ListProducts(ctx context.Context, categoryIDs []uuid.UUID) ([]*entities.MenuProduct, error) {
	if len(categoryIDs) == 0 {
		return []*entities.MenuProduct{}, nil
	}
	var ms []models.MenuProduct
	if err := GetDB(ctx, r.db).
		Where("category_id IN ?", categoryIDs).
		Order("position ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.MenuProduct, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.MenuProduct{
			ID:         ms[i].ID,
			MerchantID: ms[i].MerchantID,
			CategoryID: ms[i].CategoryID,
			Name:       ms[i].Name,
			PriceCents: ms[i].PriceCents,
			Position:   ms[i].Position,
			IsActive:   ms[i].IsActive,
			CreatedAt:  ms[i].CreatedAt,
		})
	}
	return items, nil
}

func (r *MenuRepository) toCategoryModel(e *entities.MenuCategory) *models.MenuCategory {
	if e.ID == uuid.Nil {
		e.ID = utils.GenerateUUIDv7()
	}
	return &models.MenuCategory{
		ID:         e.ID,
		MerchantID: e.MerchantID,
		Name:       e.Name,
		Position:   e.Position,
		IsActive:   e.IsActive,
	}
}

func (r *MenuRepository) toProductModel(e *entities.MenuProduct) *models.MenuProduct {
	if e.ID == uuid.Nil {
		e.ID = utils.GenerateUUIDv7()
	}
	return &models.MenuProduct{
		ID:         e.ID,
		MerchantID: e.MerchantID,
		CategoryID: e.CategoryID,
		Name:       e.Name,
		PriceCents: e.PriceCents,
		Position:   e.Position,
		IsActive:   e.IsActive,
	}
}
