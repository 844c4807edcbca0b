package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/domain/repositories"
	"vendor-onboarding.backend/pkg/logger"
	"vendor-onboarding.backend/pkg/utils"
)

// SubmissionReconciler writes a full submission: merchant, equipment, menu,
// banner and finally the vendor_status link, in that order.
type SubmissionReconciler struct {
	uow              repositories.UnitOfWork
	merchantRepo     repositories.MerchantRepository
	equipmentRepo    repositories.EquipmentRepository
	menuRepo         repositories.MenuRepository
	bannerRepo       repositories.BannerRepository
	vendorStatusRepo repositories.VendorStatusRepository

	now   func() time.Time
	newID func() uuid.UUID
}

func NewSubmissionReconciler(
	uow repositories.UnitOfWork,
	merchantRepo repositories.MerchantRepository,
	equipmentRepo repositories.EquipmentRepository,
	menuRepo repositories.MenuRepository,
	bannerRepo repositories.BannerRepository,
	vendorStatusRepo repositories.VendorStatusRepository,
) *SubmissionReconciler {
	return &SubmissionReconciler{
		uow:              uow,
		merchantRepo:     merchantRepo,
		equipmentRepo:    equipmentRepo,
		menuRepo:         menuRepo,
		bannerRepo:       bannerRepo,
		vendorStatusRepo: vendorStatusRepo,
		now:              time.Now,
		newID:            utils.GenerateUUIDv7,
	}
}

// stepTracker records finished steps so a failure can report what already ran
type stepTracker struct {
	completed []string
}

func (t *stepTracker) done(step string) {
	t.completed = append(t.completed, step)
}

func (t *stepTracker) fail(step string, err error) error {
	completed := make([]string, len(t.completed))
	copy(completed, t.completed)
	return &domainerrors.PersistenceError{Step: step, Completed: completed, Err: err}
}

// Submit reconciles in. Edit mode writes over the merchant known from the
// lookup, or the client supplied one when the lookup had none.
func (r *SubmissionReconciler) Submit(ctx context.Context, in *entities.SubmissionInput) (*entities.SubmissionResult, error) {
	if in.VendorID == "" {
		return nil, domainerrors.ErrMissingVendorID
	}

	mode := in.Mode
	if mode == entities.ModeUnspecified {
		mode = entities.ModeCreate
	}

	var merchantID uuid.UUID
	if mode == entities.ModeEdit {
		switch {
		case in.Existing.MerchantID != nil:
			merchantID = *in.Existing.MerchantID
		case in.ClientMerchantID != nil:
			merchantID = *in.ClientMerchantID
		default:
			return nil, domainerrors.ErrMissingIdentifier
		}
	}

	result := &entities.SubmissionResult{Mode: mode}
	tracker := &stepTracker{}

	err := r.uow.Do(ctx, func(txCtx context.Context) error {
		merchant := buildMerchant(in.VendorID, in.Personal, in.Bank, in.Menu)
		if mode == entities.ModeEdit {
			merchant.ID = merchantID
			if err := r.merchantRepo.Update(txCtx, merchant); err != nil {
				return tracker.fail(StepMerchant, err)
			}
		} else {
			merchant.ID = r.newID()
			if err := r.merchantRepo.Create(txCtx, merchant); err != nil {
				return tracker.fail(StepMerchant, err)
			}
		}
		result.MerchantID = merchant.ID
		tracker.done(StepMerchant)

		if in.Equipment != nil {
			profileID, err := r.reconcileEquipment(txCtx, mode, merchant.ID, in)
			if err != nil {
				return tracker.fail(StepEquipment, err)
			}
			result.EquipmentProfileID = &profileID
			tracker.done(StepEquipment)
		}

		if in.Menu != nil {
			sections := in.Menu.Sections(merchant.ID, r.newID)
			var err error
			if mode == entities.ModeEdit {
				err = r.menuRepo.ReplaceMenu(txCtx, merchant.ID, sections)
			} else {
				err = r.menuRepo.InsertSections(txCtx, sections)
			}
			if err != nil {
				return tracker.fail(StepMenu, err)
			}
			tracker.done(StepMenu)
		}

		if in.Banner.Persistable() {
			bannerID, err := r.reconcileBanner(txCtx, mode, merchant.ID, in)
			if err != nil {
				return tracker.fail(StepBanner, err)
			}
			result.BannerProfileID = &bannerID
			tracker.done(StepBanner)
		}

		if result.EquipmentProfileID == nil {
			result.EquipmentProfileID = in.Existing.EquipmentProfileID
		}
		if result.BannerProfileID == nil {
			result.BannerProfileID = in.Existing.BannerProfileID
		}

		if err := r.vendorStatusRepo.LinkSubmission(txCtx, repositories.StatusLink{
			VendorID:           in.VendorID,
			MerchantID:         merchant.ID,
			EquipmentProfileID: result.EquipmentProfileID,
			BannerProfileID:    result.BannerProfileID,
			UpdatedAt:          r.now(),
		}); err != nil {
			return tracker.fail(StepStatus, err)
		}
		tracker.done(StepStatus)
		return nil
	})
	if err != nil {
		var pErr *domainerrors.PersistenceError
		if !errors.As(err, &pErr) {
			err = tracker.fail(StepCommit, err)
		}
		logger.Error(ctx, "Submission reconciliation failed",
			logger.Document(in.VendorID),
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return nil, err
	}

	return result, nil
}

// reconcileEquipment updates the known profile in edit mode. A profile that is
// missing or owned by another merchant is never touched; a new one is created.
func (r *SubmissionReconciler) reconcileEquipment(ctx context.Context, mode entities.OnboardingMode, merchantID uuid.UUID, in *entities.SubmissionInput) (uuid.UUID, error) {
	if mode == entities.ModeEdit && in.Existing.EquipmentProfileID != nil {
		profile := in.Equipment.Profile(*in.Existing.EquipmentProfileID, merchantID, in.VendorID)
		err := r.equipmentRepo.UpdateProfile(ctx, profile)
		switch {
		case err == nil:
			if err := r.equipmentRepo.ReplaceItems(ctx, profile.ID, in.Equipment.ItemsFor(profile.ID, r.newID)); err != nil {
				return uuid.Nil, err
			}
			return profile.ID, nil
		case errors.Is(err, domainerrors.ErrNotFound):
			logger.Warn(ctx, "Equipment profile not owned by merchant, creating a new one",
				zap.String("equipment_profile_id", profile.ID.String()),
				zap.String("merchant_id", merchantID.String()),
			)
		default:
			return uuid.Nil, err
		}
	}

	profile := in.Equipment.Profile(r.newID(), merchantID, in.VendorID)
	if err := r.equipmentRepo.CreateProfile(ctx, profile); err != nil {
		return uuid.Nil, err
	}
	if err := r.equipmentRepo.ReplaceItems(ctx, profile.ID, in.Equipment.ItemsFor(profile.ID, r.newID)); err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}

func (r *SubmissionReconciler) reconcileBanner(ctx context.Context, mode entities.OnboardingMode, merchantID uuid.UUID, in *entities.SubmissionInput) (uuid.UUID, error) {
	if mode == entities.ModeEdit && in.Existing.BannerProfileID != nil {
		banner := in.Banner.Banner(*in.Existing.BannerProfileID, merchantID)
		err := r.bannerRepo.Update(ctx, banner)
		switch {
		case err == nil:
			return banner.ID, nil
		case errors.Is(err, domainerrors.ErrNotFound):
			logger.Warn(ctx, "Banner not owned by merchant, upserting by merchant",
				zap.String("banner_profile_id", banner.ID.String()),
				zap.String("merchant_id", merchantID.String()),
			)
		default:
			return uuid.Nil, err
		}
	}

	banner := in.Banner.Banner(r.newID(), merchantID)
	if err := r.bannerRepo.Upsert(ctx, banner); err != nil {
		return uuid.Nil, err
	}
	return banner.ID, nil
}
