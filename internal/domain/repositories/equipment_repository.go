package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-onboarding.backend/internal/domain/entities"
)

// EquipmentRepository defines equipment profile and item operations
type EquipmentRepository interface {
	CreateProfile(ctx context.Context, profile *entities.EquipmentProfile) error
	// UpdateProfile returns ErrNotFound unless the profile belongs to profile.MerchantID.
	UpdateProfile(ctx context.Context, profile *entities.EquipmentProfile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*entities.EquipmentProfile, error)
	ListItems(ctx context.Context, profileID uuid.UUID) ([]*entities.EquipmentItem, error)
	// ReplaceItems makes the stored items of profileID exactly equal to items.
	// It does not check ownership; callers update or create the profile first.
	ReplaceItems(ctx context.Context, profileID uuid.UUID, items []*entities.EquipmentItem) error
}
