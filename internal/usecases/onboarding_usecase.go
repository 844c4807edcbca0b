package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/domain/repositories"
	"vendor-onboarding.backend/pkg/document"
	"vendor-onboarding.backend/pkg/metrics"
)

// SubmitRequest is a final submission as the client sends it
type SubmitRequest struct {
	VendorID           string
	Mode               entities.OnboardingMode
	MerchantID         *uuid.UUID
	EquipmentProfileID *uuid.UUID
	BannerProfileID    *uuid.UUID

	Personal  entities.Draft
	Bank      entities.Draft
	Equipment *entities.EquipmentDraft
	Menu      *entities.MenuDraft
	Banner    *entities.BannerDraft
}

type vendorLooker interface {
	Lookup(ctx context.Context, raw string) (*entities.VendorLookupResult, error)
}

type submissionReconciler interface {
	Submit(ctx context.Context, in *entities.SubmissionInput) (*entities.SubmissionResult, error)
}

// OnboardingUsecase is the stateless submission boundary: re-lookup, resolve
// the mode, reconcile. The lookup runs inside the transaction with a row lock
// on vendor_status so two submissions for one document serialize.
type OnboardingUsecase struct {
	uow        repositories.UnitOfWork
	lookup     vendorLooker
	reconciler submissionReconciler
}

func NewOnboardingUsecase(uow repositories.UnitOfWork, lookup vendorLooker, reconciler submissionReconciler) *OnboardingUsecase {
	return &OnboardingUsecase{uow: uow, lookup: lookup, reconciler: reconciler}
}

// Submit runs to completion even if the caller goes away.
func (u *OnboardingUsecase) Submit(ctx context.Context, req *SubmitRequest) (*entities.SubmissionResult, error) {
	ctx = context.WithoutCancel(ctx)
	started := time.Now()

	vendorID := document.Normalize(req.VendorID)
	if vendorID == "" {
		metrics.ObserveSubmission(string(req.Mode), metrics.ResultInvalid, time.Since(started))
		return nil, domainerrors.ErrMissingVendorID
	}

	var result *entities.SubmissionResult
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		found, err := u.lookup.Lookup(u.uow.WithLock(txCtx), vendorID)
		if err != nil {
			return err
		}

		resolution, err := ResolveMode(found, req.Mode)
		if err != nil {
			return err
		}

		existing := resolution.ExistingIDs
		if resolution.EffectiveMode == entities.ModeEdit {
			if existing.EquipmentProfileID == nil {
				existing.EquipmentProfileID = req.EquipmentProfileID
			}
			if existing.BannerProfileID == nil {
				existing.BannerProfileID = req.BannerProfileID
			}
		}

		result, err = u.reconciler.Submit(txCtx, &entities.SubmissionInput{
			VendorID:         vendorID,
			Mode:             resolution.EffectiveMode,
			Existing:         existing,
			ClientMerchantID: req.MerchantID,
			Personal:         req.Personal,
			Bank:             req.Bank,
			Equipment:        req.Equipment,
			Menu:             req.Menu,
			Banner:           req.Banner,
		})
		return err
	})

	metrics.ObserveSubmission(string(req.Mode), submissionResultLabel(err), time.Since(started))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func submissionResultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, domainerrors.ErrSubmissionExists):
		return metrics.ResultConflict
	case errors.Is(err, domainerrors.ErrVendorNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domainerrors.ErrPartialWrite):
		return metrics.ResultPartial
	case errors.Is(err, domainerrors.ErrInvalidDocument), errors.Is(err, domainerrors.ErrMissingIdentifier):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
