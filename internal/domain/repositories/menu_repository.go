package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-onboarding.backend/internal/domain/entities"
)

// MenuRepository defines menu category and product operations
type MenuRepository interface {
	InsertSections(ctx context.Context, sections []entities.MenuSection) error
	// ReplaceMenu makes the stored categories and products of merchantID exactly
	// equal to sections. Products are removed before their categories.
	ReplaceMenu(ctx context.Context, merchantID uuid.UUID, sections []entities.MenuSection) error
	ListCategories(ctx context.Context, merchantID uuid.UUID) ([]*entities.MenuCategory, error)
	ListProducts(ctx context.Context, categoryIDs []uuid.UUID) ([]*entities.MenuProduct, error)
}
