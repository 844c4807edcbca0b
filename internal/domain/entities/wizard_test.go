package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWizardStep_Sequence(t *testing.T) {
	assert.Equal(t, StepApproved, StepDocument.Next())
	assert.Equal(t, StepDone, StepBanner.Next())
	assert.Equal(t, StepDone, StepDone.Next())
	assert.Equal(t, StepDocument, StepDocument.Prev())
	assert.Equal(t, StepMenu, StepBanner.Prev())

	step, ok := ParseWizardStep("equipment")
	assert.True(t, ok)
	assert.Equal(t, StepEquipment, step)
	_, ok = ParseWizardStep("payment")
	assert.False(t, ok)
	assert.Equal(t, -1, WizardStep("x").Index())
}

func TestWizardSession_Reachable(t *testing.T) {
	s := NewWizardSession("", time.Now())
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Reachable(StepPersonal))

	s.Step = StepBank
	assert.True(t, s.Reachable(StepPersonal))
	assert.True(t, s.Reachable(StepBank))
	assert.False(t, s.Reachable(StepEquipment))
	assert.False(t, s.Reachable(StepApproved))

	s.Step = StepDone
	assert.False(t, s.Reachable(StepPersonal))
}

func TestWizardSession_ResetClearsDocumentState(t *testing.T) {
	merchantID := uuid.New()
	s := NewWizardSession("s1", time.Now())
	s.VendorID = "12345678901"
	s.Mode = ModeEdit
	s.CanContinue = true
	s.Existing.MerchantID = &merchantID
	s.Step = StepMenu
	s.Drafts.Personal = Draft{"pdvName": "x"}
	s.Sheet = &SheetRow{PfCpf: "12345678901"}
	s.Server = &ServerPrefill{}

	s.Reset()

	assert.Equal(t, "s1", s.ID)
	assert.Empty(t, s.VendorID)
	assert.Equal(t, ModeUnspecified, s.Mode)
	assert.False(t, s.CanContinue)
	assert.Nil(t, s.Existing.MerchantID)
	assert.Equal(t, StepDocument, s.Step)
	assert.False(t, s.Drafts.Has(SlotPersonal))
	assert.Nil(t, s.Sheet)
	assert.Nil(t, s.Server)
}

func TestWizardSession_ReopenFinishedSession(t *testing.T) {
	s := NewWizardSession("s1", time.Now())
	s.VendorID = "12345678901"
	s.Step = StepDone
	s.Drafts.Personal = Draft{"pdvName": "x"}
	s.Server = &ServerPrefill{}
	s.Result = &SubmissionResult{Mode: ModeCreate, MerchantID: uuid.New()}

	s.Reopen()

	assert.Equal(t, StepApproved, s.Step)
	assert.Nil(t, s.Result)
	assert.Nil(t, s.Server)
	assert.True(t, s.Drafts.Has(SlotPersonal))

	s.Step = StepMenu
	s.Reopen()
	assert.Equal(t, StepMenu, s.Step, "only finished sessions move")
}

func TestVendorStatusRecord_HasMerchant(t *testing.T) {
	id := uuid.New()
	assert.True(t, (&VendorStatusRecord{MerchantID: &id}).HasMerchant())
	nilID := uuid.Nil
	assert.False(t, (&VendorStatusRecord{MerchantID: &nilID}).HasMerchant())
	assert.False(t, (&VendorStatusRecord{}).HasMerchant())
	assert.False(t, (*VendorStatusRecord)(nil).HasMerchant())

	assert.True(t, VendorStatusConfirmed.Valid())
	assert.False(t, VendorStatus("ativo").Valid())

	m, ok := ParseOnboardingMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeUnspecified, m)
	_, ok = ParseOnboardingMode("upsert")
	assert.False(t, ok)
}

func TestMerchant_PrefillDefaults(t *testing.T) {
	m := &Merchant{CpfCnpj: "12345678901", PdvName: "Barraca"}
	p := m.Prefill()
	assert.Equal(t, "PF", p.Personal.PersonType)
	assert.Equal(t, "corrente", p.Bank.AccountType)
	assert.Equal(t, "", p.Personal.Email)
	assert.Equal(t, "", p.Personal.AddressCombined)

	assert.Equal(t, "Rua A, 1 • Recife - PE • CEP 50000-000", BuildAddressCombined(" Rua A, 1 ", "Recife", "PE", "50000-000"))
	assert.Equal(t, "PE", BuildAddressCombined("", "", "PE", ""))
}
