package entities

import (
	"time"

	"github.com/google/uuid"
)

// WizardStep is one screen of the onboarding wizard
type WizardStep string

const (
	StepDocument  WizardStep = "document"
	StepApproved  WizardStep = "approved"
	StepPersonal  WizardStep = "personal"
	StepBank      WizardStep = "bank"
	StepEquipment WizardStep = "equipment"
	StepMenu      WizardStep = "menu"
	StepBanner    WizardStep = "banner"
	StepDone      WizardStep = "done"
)

var wizardSteps = []WizardStep{
	StepDocument, StepApproved, StepPersonal, StepBank, StepEquipment, StepMenu, StepBanner, StepDone,
}

// ParseWizardStep validates s against the known steps
func ParseWizardStep(s string) (WizardStep, bool) {
	for _, step := range wizardSteps {
		if string(step) == s {
			return step, true
		}
	}
	return "", false
}

// Index is the position of the step in the sequence, -1 when unknown
func (s WizardStep) Index() int {
	for i, step := range wizardSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the following step; done is terminal.
func (s WizardStep) Next() WizardStep {
	i := s.Index()
	if i < 0 || i >= len(wizardSteps)-1 {
		return s
	}
	return wizardSteps[i+1]
}

// Prev returns the preceding step; document is the first.
func (s WizardStep) Prev() WizardStep {
	i := s.Index()
	if i <= 0 {
		return s
	}
	return wizardSteps[i-1]
}

// Slot maps a data step to its draft slot
func (s WizardStep) Slot() (DraftSlot, bool) {
	switch s {
	case StepPersonal:
		return SlotPersonal, true
	case StepBank:
		return SlotBank, true
	case StepEquipment:
		return SlotEquipment, true
	case StepMenu:
		return SlotMenu, true
	case StepBanner:
		return SlotBanner, true
	}
	return "", false
}

// ServerPrefill caches the stored records read for edit mode
type ServerPrefill struct {
	Merchant  *MerchantPrefill `json:"merchant,omitempty"`
	Equipment *EquipmentDraft  `json:"equipment,omitempty"`
	Menu      *MenuDraft       `json:"menu,omitempty"`
	Banner    *BannerDraft     `json:"banner,omitempty"`
	LoadedAt  time.Time        `json:"loadedAt"`
}

// WizardSession is the whole state of one vendor walking the wizard.
// It is bound to a single document; a different document resets it.
type WizardSession struct {
	ID          string         `json:"id"`
	VendorID    string         `json:"vendorId"`
	Status      VendorStatus   `json:"status"`
	Mode        OnboardingMode `json:"mode"`
	Preference  OnboardingMode `json:"preference,omitempty"`
	CanContinue bool           `json:"canContinue"`
	Recovered   bool           `json:"recovered,omitempty"`
	Existing    ExistingIDs    `json:"existing"`
	Step        WizardStep     `json:"step"`

	Drafts Drafts         `json:"drafts"`
	Sheet  *SheetRow      `json:"sheet,omitempty"`
	Server *ServerPrefill `json:"server,omitempty"`

	Result    *SubmissionResult `json:"result,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewWizardSession starts an empty session. An empty id gets a fresh one.
func NewWizardSession(id string, now time.Time) *WizardSession {
	if id == "" {
		id = uuid.NewString()
	}
	return &WizardSession{ID: id, Step: StepDocument, CreatedAt: now, UpdatedAt: now}
}

// Reopen brings a finished session back to the approval screen for another
// round of edits. Drafts are kept; the result and cached records are not.
func (s *WizardSession) Reopen() {
	if s.Step != StepDone {
		return
	}
	s.Step = StepApproved
	s.Result = nil
	s.Server = nil
}

// Reset forgets the document and everything derived from it.
func (s *WizardSession) Reset() {
	s.VendorID = ""
	s.Status = ""
	s.Mode = ModeUnspecified
	s.Preference = ModeUnspecified
	s.CanContinue = false
	s.Recovered = false
	s.Existing = ExistingIDs{}
	s.Step = StepDocument
	s.Drafts.Clear()
	s.Sheet = nil
	s.Server = nil
	s.Result = nil
}

// Reachable reports whether step may be saved now: the current step or an earlier data step.
func (s *WizardSession) Reachable(step WizardStep) bool {
	if _, ok := step.Slot(); !ok {
		return false
	}
	if s.Step == StepDone {
		return false
	}
	return step.Index() <= s.Step.Index() && s.Step.Index() >= StepPersonal.Index()
}

// ReadyToSubmit reports whether every step through menu holds a draft
func (s *WizardSession) ReadyToSubmit() bool {
	return s.Step == StepBanner &&
		s.Drafts.Has(SlotPersonal) &&
		s.Drafts.Has(SlotBank) &&
		s.Drafts.Has(SlotEquipment) &&
		s.Drafts.Has(SlotMenu)
}
