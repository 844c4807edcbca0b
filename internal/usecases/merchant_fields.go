package usecases

import (
	"github.com/volatiletech/null/v8"

	"vendor-onboarding.backend/internal/domain/entities"
)

type draftSource int

const (
	fromPersonal draftSource = iota
	fromBank
)

// merchantField maps one merchants column to the draft keys that feed it.
// Keys are tried in order; required columns fall back to def, the others to NULL.
type merchantField struct {
	column   string
	source   draftSource
	keys     []string
	required bool
	def      string
	set      func(m *entities.Merchant, v null.String)
}

var merchantFields = []merchantField{
	{column: "pdv_name", source: fromPersonal, keys: []string{"pdvName", "pdv_name"}, required: true, def: "PDV",
		set: func(m *entities.Merchant, v null.String) { m.PdvName = v.String }},
	{column: "person_type", source: fromPersonal, keys: []string{"personType", "person_type"}, required: true, def: string(entities.PersonTypePF),
		set: func(m *entities.Merchant, v null.String) { m.PersonType = entities.PersonType(v.String) }},
	{column: "full_name", source: fromPersonal, keys: []string{"fullName", "full_name"}, required: true,
		set: func(m *entities.Merchant, v null.String) { m.FullName = v.String }},
	{column: "email", source: fromPersonal, keys: []string{"email"},
		set: func(m *entities.Merchant, v null.String) { m.Email = v }},
	{column: "phone", source: fromPersonal, keys: []string{"phone"},
		set: func(m *entities.Merchant, v null.String) { m.Phone = v }},
	{column: "address_full", source: fromPersonal, keys: []string{"addressFull", "address_full"},
		set: func(m *entities.Merchant, v null.String) { m.AddressFull = v }},
	{column: "address_city", source: fromPersonal, keys: []string{"addressCity", "address_city"},
		set: func(m *entities.Merchant, v null.String) { m.AddressCity = v }},
	{column: "address_state", source: fromPersonal, keys: []string{"addressState", "address_state"},
		set: func(m *entities.Merchant, v null.String) { m.AddressState = v }},
	{column: "address_zipcode", source: fromPersonal, keys: []string{"addressZipcode", "address_zipcode"},
		set: func(m *entities.Merchant, v null.String) { m.AddressZipcode = v }},
	{column: "bank_name", source: fromBank, keys: []string{"bankName", "bank_name"},
		set: func(m *entities.Merchant, v null.String) { m.BankName = v }},
	{column: "bank_agency", source: fromBank, keys: []string{"agency", "bank_agency"},
		set: func(m *entities.Merchant, v null.String) { m.BankAgency = v }},
	{column: "bank_account", source: fromBank, keys: []string{"account", "bank_account"},
		set: func(m *entities.Merchant, v null.String) { m.BankAccount = v }},
	{column: "bank_account_type", source: fromBank, keys: []string{"accountType", "bank_account_type"},
		set: func(m *entities.Merchant, v null.String) { m.BankAccountType = v }},
	{column: "bank_holder_doc", source: fromBank, keys: []string{"holderDoc", "bank_holder_doc"},
		set: func(m *entities.Merchant, v null.String) { m.BankHolderDoc = v }},
	{column: "bank_holder_name", source: fromBank, keys: []string{"holderName", "bank_holder_name"},
		set: func(m *entities.Merchant, v null.String) { m.BankHolderName = v }},
	{column: "pix_key", source: fromBank, keys: []string{"pixKey", "pix_key"},
		set: func(m *entities.Merchant, v null.String) { m.PixKey = v }},
}

// buildMerchant assembles the merchant row of a submission. cpf_cnpj is
// always the vendor id; machines_qty comes from the menu draft.
func buildMerchant(vendorID string, personal, bank entities.Draft, menu *entities.MenuDraft) *entities.Merchant {
	m := &entities.Merchant{CpfCnpj: vendorID}
	for _, f := range merchantFields {
		d := personal
		if f.source == fromBank {
			d = bank
		}
		if f.required {
			f.set(m, null.StringFrom(d.StringOr(f.def, f.keys...)))
			continue
		}
		f.set(m, d.NullString(f.keys...))
	}
	if menu != nil {
		m.MachinesQty = menu.MachinesQty
	}
	return m
}
