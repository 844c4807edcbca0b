package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/domain/repositories"
	"vendor-onboarding.backend/pkg/document"
	"vendor-onboarding.backend/pkg/logger"
)

// ProspectPrefill is a spreadsheet row with its step drafts
type ProspectPrefill struct {
	Row      *entities.SheetRow `json:"row"`
	Personal entities.Draft     `json:"personal"`
	Bank     entities.Draft     `json:"bank"`
}

// PrefillUsecase serves the stored records back in the shape of the wizard forms
type PrefillUsecase struct {
	merchantRepo  repositories.MerchantRepository
	equipmentRepo repositories.EquipmentRepository
	menuRepo      repositories.MenuRepository
	bannerRepo    repositories.BannerRepository
	prospects     repositories.ProspectRepository
}

func NewPrefillUsecase(
	merchantRepo repositories.MerchantRepository,
	equipmentRepo repositories.EquipmentRepository,
	menuRepo repositories.MenuRepository,
	bannerRepo repositories.BannerRepository,
	prospects repositories.ProspectRepository,
) *PrefillUsecase {
	return &PrefillUsecase{
		merchantRepo:  merchantRepo,
		equipmentRepo: equipmentRepo,
		menuRepo:      menuRepo,
		bannerRepo:    bannerRepo,
		prospects:     prospects,
	}
}

func readErr(op string, err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return domainerrors.NewStorageError(op, err)
}

// GetMerchant returns the personal and bank forms with every field defaulted
func (u *PrefillUsecase) GetMerchant(ctx context.Context, merchantID uuid.UUID) (*entities.MerchantPrefill, error) {
	m, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, readErr("read merchant", err)
	}
	return m.Prefill(), nil
}

// GetEquipment returns the profile and its items in position order
func (u *PrefillUsecase) GetEquipment(ctx context.Context, profileID uuid.UUID) (*entities.EquipmentDraft, error) {
	profile, err := u.equipmentRepo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, readErr("read equipment profile", err)
	}
	items, err := u.equipmentRepo.ListItems(ctx, profileID)
	if err != nil {
		return nil, readErr("read equipment items", err)
	}
	return entities.NewEquipmentDraft(profile, items), nil
}

// GetMenu returns active products grouped by category. A merchant with no
// categories gets the empty default menu.
func (u *PrefillUsecase) GetMenu(ctx context.Context, merchantID uuid.UUID) (*entities.MenuDraft, error) {
	cats, err := u.menuRepo.ListCategories(ctx, merchantID)
	if err != nil {
		return nil, readErr("read menu categories", err)
	}
	if len(cats) == 0 {
		return entities.DefaultMenuDraft(), nil
	}

	ids := make([]uuid.UUID, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	prods, err := u.menuRepo.ListProducts(ctx, ids)
	if err != nil {
		return nil, readErr("read menu products", err)
	}

	machinesQty := entities.DefaultMachinesQty
	m, err := u.merchantRepo.GetByID(ctx, merchantID)
	switch {
	case err == nil:
		machinesQty = m.MachinesQty
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, readErr("read merchant", err)
	}

	return entities.NewMenuDraft(machinesQty, cats, prods), nil
}

// GetBanner returns the stored banner or the default one
func (u *PrefillUsecase) GetBanner(ctx context.Context, merchantID uuid.UUID) (*entities.VendorBanner, error) {
	b, err := u.bannerRepo.GetByMerchantID(ctx, merchantID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return &entities.VendorBanner{
			MerchantID: merchantID,
			Theme:      entities.BannerThemeClassic,
			Accent:     entities.BannerAccentOrange,
		}, nil
	}
	if err != nil {
		return nil, readErr("read banner", err)
	}
	return b, nil
}

// SaveBanner upserts the banner of merchantID
func (u *PrefillUsecase) SaveBanner(ctx context.Context, merchantID uuid.UUID, draft *entities.BannerDraft) (*entities.VendorBanner, error) {
	if !draft.Persistable() {
		return nil, domainerrors.NewValidationError("bannerName", "bannerName é obrigatório")
	}
	if err := validateStep(entities.StepBanner, draft); err != nil {
		return nil, err
	}

	banner := draft.Banner(uuid.Nil, merchantID)
	if err := u.bannerRepo.Upsert(ctx, banner); err != nil {
		return nil, domainerrors.NewStorageError("upsert banner", err)
	}
	return banner, nil
}

// FindProspect looks the document up in the prospect sheet
func (u *PrefillUsecase) FindProspect(ctx context.Context, raw string) (*ProspectPrefill, error) {
	doc := document.Normalize(raw)
	if len(doc) < MinDocumentLength {
		return nil, domainerrors.ErrInvalidDocument
	}

	row, err := u.prospects.FindByDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domainerrors.ErrProspectNotFound
	}
	return &ProspectPrefill{
		Row:      row,
		Personal: SheetPersonalDraft(row, doc),
		Bank:     SheetBankDraft(row, doc),
	}, nil
}

// LoadServerPrefill reads every stored record of an edit-mode vendor at once.
// Missing equipment or banner records are left nil.
func (u *PrefillUsecase) LoadServerPrefill(ctx context.Context, existing entities.ExistingIDs) (*entities.ServerPrefill, error) {
	if existing.MerchantID == nil {
		return nil, domainerrors.ErrMissingIdentifier
	}
	merchantID := *existing.MerchantID
	out := &entities.ServerPrefill{LoadedAt: time.Now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := u.GetMerchant(gctx, merchantID)
		if err != nil {
			return err
		}
		out.Merchant = m
		return nil
	})
	if existing.EquipmentProfileID != nil {
		g.Go(func() error {
			e, err := u.GetEquipment(gctx, *existing.EquipmentProfileID)
			if errors.Is(err, domainerrors.ErrNotFound) {
				logger.Warn(ctx, "Linked equipment profile missing", zap.String("equipment_profile_id", existing.EquipmentProfileID.String()))
				return nil
			}
			if err != nil {
				return err
			}
			out.Equipment = e
			return nil
		})
	}
	g.Go(func() error {
		m, err := u.GetMenu(gctx, merchantID)
		if err != nil {
			return err
		}
		out.Menu = m
		return nil
	})
	g.Go(func() error {
		b, err := u.bannerRepo.GetByMerchantID(gctx, merchantID)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return readErr("read banner", err)
		}
		out.Banner = entities.NewBannerDraft(b)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
