package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-onboarding.backend/internal/domain/entities"
)

// BannerRepository defines vendor banner operations
type BannerRepository interface {
	// Update returns ErrNotFound unless the banner belongs to banner.MerchantID.
	Update(ctx context.Context, banner *entities.VendorBanner) error
	// Upsert inserts or, on a merchant_id conflict, updates in place. The stored id is written back.
	Upsert(ctx context.Context, banner *entities.VendorBanner) error
	GetByMerchantID(ctx context.Context, merchantID uuid.UUID) (*entities.VendorBanner, error)
}
