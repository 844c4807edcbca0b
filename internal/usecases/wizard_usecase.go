package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/domain/repositories"
	"vendor-onboarding.backend/pkg/document"
	"vendor-onboarding.backend/pkg/logger"
)

// Display sources of a step view
const (
	SourceDraft   = "draft"
	SourceServer  = "server"
	SourceSheet   = "sheet"
	SourceDefault = "default"
)

// StepView is what a wizard screen shows
type StepView struct {
	Step   entities.WizardStep `json:"step"`
	Source string              `json:"source"`
	Data   interface{}         `json:"data"`
}

type serverPrefillLoader interface {
	LoadServerPrefill(ctx context.Context, existing entities.ExistingIDs) (*entities.ServerPrefill, error)
}

type onboardingSubmitter interface {
	Submit(ctx context.Context, req *SubmitRequest) (*entities.SubmissionResult, error)
}

// WizardUsecase drives one vendor through the onboarding steps. Every
// operation loads the session, applies one transition and saves it back.
type WizardUsecase struct {
	sessions      repositories.WizardSessionRepository
	lookup        vendorLooker
	prospects     repositories.ProspectRepository
	prefill       serverPrefillLoader
	onboarding    onboardingSubmitter
	submitLockTTL time.Duration
	now           func() time.Time
}

func NewWizardUsecase(
	sessions repositories.WizardSessionRepository,
	lookup vendorLooker,
	prospects repositories.ProspectRepository,
	prefill serverPrefillLoader,
	onboarding onboardingSubmitter,
	submitLockTTL time.Duration,
) *WizardUsecase {
	if submitLockTTL <= 0 {
		submitLockTTL = DefaultSubmitLockTTL
	}
	return &WizardUsecase{
		sessions:      sessions,
		lookup:        lookup,
		prospects:     prospects,
		prefill:       prefill,
		onboarding:    onboarding,
		submitLockTTL: submitLockTTL,
		now:           time.Now,
	}
}

// Start binds the session to a document. The vendor lookup and the prospect
// sheet are read concurrently; only the lookup can fail the call. Entering a
// different document than the one the session holds discards all drafts.
// Starting a finished session again reopens it for editing.
func (u *WizardUsecase) Start(ctx context.Context, sessionID, rawDocument string, preference entities.OnboardingMode) (*entities.WizardSession, error) {
	session, err := u.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithSessionID(ctx, session.ID)
	doc := document.Normalize(rawDocument)

	var (
		found *entities.VendorLookupResult
		row   *entities.SheetRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		found, err = u.lookup.Lookup(gctx, doc)
		return err
	})
	g.Go(func() error {
		r, err := u.prospects.FindByDocument(gctx, doc)
		if err != nil {
			logger.Warn(ctx, "Prospect sheet unavailable", logger.Document(doc), zap.Error(err))
			return nil
		}
		row = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolution, err := ResolveMode(found, preference)
	if err != nil {
		return nil, err
	}

	if session.VendorID != doc {
		session.Reset()
	}
	session.Reopen()
	session.Server = nil
	session.VendorID = doc
	session.Preference = preference
	session.Status = found.Vendor.Status
	session.CanContinue = found.CanContinue
	session.Recovered = found.Recovered
	session.Mode = resolution.EffectiveMode
	session.Existing = resolution.ExistingIDs
	session.Sheet = row
	if session.Step.Index() < entities.StepApproved.Index() || !session.CanContinue {
		session.Step = entities.StepApproved
	}

	if err := u.save(ctx, session); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Wizard started",
		logger.Document(doc),
		zap.String("mode", string(session.Mode)),
		zap.Bool("can_continue", session.CanContinue),
	)
	return session, nil
}

// Get returns the session as stored
func (u *WizardUsecase) Get(ctx context.Context, id string) (*entities.WizardSession, error) {
	return u.sessions.Get(ctx, id)
}

// Continue leaves the approval screen; only confirmed vendors may
func (u *WizardUsecase) Continue(ctx context.Context, id string) (*entities.WizardSession, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != entities.StepApproved {
		return nil, domainerrors.ErrStepOutOfOrder
	}
	if !session.CanContinue {
		return nil, domainerrors.ErrVendorNotConfirmed
	}
	session.Step = entities.StepPersonal
	if err := u.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveStep validates payload for step, stores it and advances when step is
// the current one. Earlier steps can be edited without moving.
func (u *WizardUsecase) SaveStep(ctx context.Context, id string, step entities.WizardStep, payload json.RawMessage) (*entities.WizardSession, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithSessionID(ctx, session.ID)
	if !session.Reachable(step) {
		return nil, domainerrors.ErrStepOutOfOrder
	}

	drafts := session.Drafts
	switch step {
	case entities.StepPersonal, entities.StepBank:
		var patch entities.Draft
		if err := decodePayload(payload, &patch); err != nil {
			return nil, err
		}
		base, _, err := u.baseDraft(ctx, session, step)
		if err != nil {
			return nil, err
		}
		if step == entities.StepPersonal {
			drafts.MergePersonal(base, patch)
			err = validateStep(step, drafts.Personal)
		} else {
			drafts.MergeBank(base, patch)
			err = validateStep(step, drafts.Bank)
		}
		if err != nil {
			return nil, err
		}
	case entities.StepEquipment:
		var d entities.EquipmentDraft
		if err := decodePayload(payload, &d); err != nil {
			return nil, err
		}
		if err := validateStep(step, &d); err != nil {
			return nil, err
		}
		drafts.ReplaceEquipment(&d)
	case entities.StepMenu:
		var d entities.MenuDraft
		if err := decodePayload(payload, &d); err != nil {
			return nil, err
		}
		if err := validateStep(step, &d); err != nil {
			return nil, err
		}
		drafts.ReplaceMenu(&d)
	case entities.StepBanner:
		var d entities.BannerDraft
		if err := decodePayload(payload, &d); err != nil {
			return nil, err
		}
		if err := validateStep(step, &d); err != nil {
			return nil, err
		}
		drafts.ReplaceBanner(&d)
	}

	session.Drafts = drafts
	if step == session.Step && step != entities.StepBanner {
		session.Step = step.Next()
	}
	if err := u.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves one step back, keeping every draft
func (u *WizardUsecase) Back(ctx context.Context, id string) (*entities.WizardSession, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step == entities.StepDone || session.Step == entities.StepDocument {
		return nil, domainerrors.ErrStepOutOfOrder
	}
	session.Step = session.Step.Prev()
	if err := u.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// StepView returns what a step displays: the in-session draft, else the
// stored records (edit mode), else the prospect sheet, else empty defaults.
func (u *WizardUsecase) StepView(ctx context.Context, id string, step entities.WizardStep) (*StepView, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithSessionID(ctx, session.ID)
	slot, ok := step.Slot()
	if !ok {
		return nil, domainerrors.NewValidationError("step", "not a data step")
	}

	view := &StepView{Step: step}
	if session.Drafts.Has(slot) {
		view.Source = SourceDraft
		switch slot {
		case entities.SlotPersonal:
			view.Data = session.Drafts.Personal
		case entities.SlotBank:
			view.Data = session.Drafts.Bank
		case entities.SlotEquipment:
			view.Data = session.Drafts.Equipment
		case entities.SlotMenu:
			view.Data = session.Drafts.Menu
		case entities.SlotBanner:
			view.Data = session.Drafts.Banner
		}
		return view, nil
	}

	switch slot {
	case entities.SlotPersonal, entities.SlotBank:
		view.Data, view.Source, err = u.baseDraft(ctx, session, step)
		if err != nil {
			return nil, err
		}
		return view, nil
	}

	server, err := u.serverPrefill(ctx, session)
	if err != nil {
		return nil, err
	}
	view.Source = SourceDefault
	switch slot {
	case entities.SlotEquipment:
		view.Data = entities.DefaultEquipmentDraft()
		if server != nil && server.Equipment != nil {
			view.Data, view.Source = server.Equipment, SourceServer
		}
	case entities.SlotMenu:
		view.Data = entities.DefaultMenuDraft()
		if server != nil && server.Menu != nil {
			view.Data, view.Source = server.Menu, SourceServer
		}
	case entities.SlotBanner:
		view.Data = entities.DefaultBannerDraft()
		if server != nil && server.Banner != nil {
			view.Data, view.Source = server.Banner, SourceServer
		}
	}
	return view, nil
}

// Submit sends the drafts through the onboarding usecase. One submission per
// session runs at a time; a finished session returns its result again.
// Only the mode the caller asked for at Start is forwarded, so a merchant
// linked since then turns the submission into an edit.
func (u *WizardUsecase) Submit(ctx context.Context, id string) (*entities.WizardSession, error) {
	session, err := u.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithSessionID(ctx, session.ID)
	if session.Step == entities.StepDone && session.Result != nil {
		return session, nil
	}
	if !session.ReadyToSubmit() {
		return nil, domainerrors.ErrStepIncomplete
	}

	acquired, err := u.sessions.AcquireSubmitLock(ctx, session.ID, u.submitLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domainerrors.ErrSubmissionInFlight
	}
	defer func() {
		if err := u.sessions.ReleaseSubmitLock(context.WithoutCancel(ctx), session.ID); err != nil {
			logger.Warn(ctx, "Submit lock release failed", zap.Error(err))
		}
	}()

	result, err := u.onboarding.Submit(ctx, &SubmitRequest{
		VendorID:           session.VendorID,
		Mode:               session.Preference,
		MerchantID:         session.Existing.MerchantID,
		EquipmentProfileID: session.Existing.EquipmentProfileID,
		BannerProfileID:    session.Existing.BannerProfileID,
		Personal:           session.Drafts.Personal,
		Bank:               session.Drafts.Bank,
		Equipment:          session.Drafts.Equipment,
		Menu:               session.Drafts.Menu,
		Banner:             session.Drafts.Banner,
	})
	if err != nil {
		return nil, err
	}

	merchantID := result.MerchantID
	session.Result = result
	session.Mode = result.Mode
	session.Existing = entities.ExistingIDs{
		MerchantID:         &merchantID,
		EquipmentProfileID: result.EquipmentProfileID,
		BannerProfileID:    result.BannerProfileID,
	}
	session.Step = entities.StepDone
	if err := u.save(context.WithoutCancel(ctx), session); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Wizard submitted", zap.String("merchant_id", merchantID.String()), zap.String("mode", string(result.Mode)))
	return session, nil
}

// Reset drops the session entirely
func (u *WizardUsecase) Reset(ctx context.Context, id string) error {
	return u.sessions.Delete(ctx, id)
}

func (u *WizardUsecase) loadOrCreate(ctx context.Context, id string) (*entities.WizardSession, error) {
	if id != "" {
		session, err := u.sessions.Get(ctx, id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, domainerrors.ErrSessionNotFound) {
			return nil, err
		}
	}
	return entities.NewWizardSession(id, u.now().UTC()), nil
}

func (u *WizardUsecase) save(ctx context.Context, session *entities.WizardSession) error {
	session.UpdatedAt = u.now().UTC()
	return u.sessions.Save(ctx, session)
}

// serverPrefill loads the stored records once per session in edit mode
func (u *WizardUsecase) serverPrefill(ctx context.Context, session *entities.WizardSession) (*entities.ServerPrefill, error) {
	if session.Mode != entities.ModeEdit || session.Existing.MerchantID == nil {
		return nil, nil
	}
	if session.Server != nil {
		return session.Server, nil
	}
	server, err := u.prefill.LoadServerPrefill(ctx, session.Existing)
	if err != nil {
		return nil, err
	}
	session.Server = server
	if err := u.save(ctx, session); err != nil {
		return nil, err
	}
	return server, nil
}

// baseDraft is the value a personal or bank draft starts from
func (u *WizardUsecase) baseDraft(ctx context.Context, session *entities.WizardSession, step entities.WizardStep) (entities.Draft, string, error) {
	server, err := u.serverPrefill(ctx, session)
	if err != nil {
		return nil, "", err
	}
	if server != nil && server.Merchant != nil {
		if step == entities.StepPersonal {
			return server.Merchant.Personal.Draft(), SourceServer, nil
		}
		return server.Merchant.Bank.Draft(), SourceServer, nil
	}
	if session.Sheet != nil {
		if step == entities.StepPersonal {
			return SheetPersonalDraft(session.Sheet, session.VendorID), SourceSheet, nil
		}
		return SheetBankDraft(session.Sheet, session.VendorID), SourceSheet, nil
	}
	if step == entities.StepPersonal {
		return entities.Draft{"personType": string(entities.PersonTypePF), "cpfCnpj": session.VendorID}, SourceDefault, nil
	}
	return entities.Draft{"accountType": string(entities.BankAccountChecking)}, SourceDefault, nil
}

func decodePayload(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		return domainerrors.NewValidationError("payload", "empty body")
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return domainerrors.NewValidationError("payload", "invalid JSON")
	}
	return nil
}
