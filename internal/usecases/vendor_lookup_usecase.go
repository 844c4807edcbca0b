package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/domain/repositories"
	"vendor-onboarding.backend/pkg/document"
	"vendor-onboarding.backend/pkg/logger"
	"vendor-onboarding.backend/pkg/metrics"
)

// VendorLookupUsecase resolves a document to its provisioned vendor state
type VendorLookupUsecase struct {
	vendorStatusRepo repositories.VendorStatusRepository
	merchantRepo     repositories.MerchantRepository
}

func NewVendorLookupUsecase(
	vendorStatusRepo repositories.VendorStatusRepository,
	merchantRepo repositories.MerchantRepository,
) *VendorLookupUsecase {
	return &VendorLookupUsecase{
		vendorStatusRepo: vendorStatusRepo,
		merchantRepo:     merchantRepo,
	}
}

// Lookup normalizes raw and reads vendor_status. It never writes.
//
// A vendor without a linked merchant but with a merchants row for the same
// document (left behind by an interrupted submission) gets that merchant
// adopted: the result is in edit mode and flagged Recovered.
func (u *VendorLookupUsecase) Lookup(ctx context.Context, raw string) (*entities.VendorLookupResult, error) {
	doc := document.Normalize(raw)
	if len(doc) < MinDocumentLength {
		metrics.ObserveLookup(metrics.ResultInvalid)
		return nil, domainerrors.ErrInvalidDocument
	}

	vendor, err := u.vendorStatusRepo.GetByVendorID(ctx, doc)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.ObserveLookup(metrics.ResultNotFound)
			return nil, domainerrors.ErrVendorNotFound
		}
		metrics.ObserveLookup(metrics.ResultError)
		logger.Error(ctx, "Vendor status read failed", logger.Document(doc), zap.Error(err))
		return nil, domainerrors.NewStorageError("read vendor status", err)
	}

	result := &entities.VendorLookupResult{
		Vendor:      vendor,
		CanContinue: vendor.Status == entities.VendorStatusConfirmed,
		Mode:        entities.ModeCreate,
	}
	if vendor.HasMerchant() {
		result.Mode = entities.ModeEdit
		metrics.ObserveLookup(metrics.ResultFound)
		return result, nil
	}

	orphan, err := u.merchantRepo.GetByTaxDocument(ctx, doc)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
	case err != nil:
		metrics.ObserveLookup(metrics.ResultError)
		logger.Error(ctx, "Merchant read failed", logger.Document(doc), zap.Error(err))
		return nil, domainerrors.NewStorageError("read merchant by document", err)
	case orphan != nil:
		id := orphan.ID
		vendor.MerchantID = &id
		result.Mode = entities.ModeEdit
		result.Recovered = true
		metrics.ObserveLookup(metrics.ResultRecovered)
		logger.Warn(ctx, "Adopted unlinked merchant for vendor", logger.Document(doc), zap.String("merchant_id", id.String()))
		return result, nil
	}

	metrics.ObserveLookup(metrics.ResultFound)
	return result, nil
}
