package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-onboarding.backend/internal/domain/entities"
)

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	// Update overwrites every column of the row matching both ID and CpfCnpj.
	Update(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByTaxDocument(ctx context.Context, cpfCnpj string) (*entities.Merchant, error)
}
