package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-onboarding.backend/internal/domain/entities"
)

// StatusLink is the write of a completed submission onto vendor_status
type StatusLink struct {
	VendorID           string
	MerchantID         uuid.UUID
	EquipmentProfileID *uuid.UUID
	BannerProfileID    *uuid.UUID
	UpdatedAt          time.Time
}

// VendorStatusRepository defines vendor_status operations
type VendorStatusRepository interface {
	GetByVendorID(ctx context.Context, vendorID string) (*entities.VendorStatusRecord, error)
	// LinkSubmission sets the submission identifiers; returns ErrNotFound when
	// no row matches the vendor.
	LinkSubmission(ctx context.Context, link StatusLink) error
	// Upsert provisions a vendor, keeping any linked identifiers.
	Upsert(ctx context.Context, vendorID string, status entities.VendorStatus) error
}
