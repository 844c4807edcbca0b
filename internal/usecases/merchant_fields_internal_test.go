package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vendor-onboarding.backend/internal/domain/entities"
)

func TestBuildMerchant_Defaults(t *testing.T) {
	m := buildMerchant("12345678901", nil, nil, nil)

	assert.Equal(t, "12345678901", m.CpfCnpj)
	assert.Equal(t, "PDV", m.PdvName)
	assert.Equal(t, entities.PersonTypePF, m.PersonType)
	assert.Equal(t, "", m.FullName)
	assert.False(t, m.Email.Valid)
	assert.False(t, m.BankAccountType.Valid)
	assert.False(t, m.PixKey.Valid)
	assert.Equal(t, 0, m.MachinesQty)
}

func TestBuildMerchant_CamelCaseWinsOverSnakeCase(t *testing.T) {
	personal := entities.Draft{
		"pdvName":        "Camel PDV",
		"pdv_name":       "Snake PDV",
		"person_type":    "PJ",
		"full_name":      "Snake Name",
		"email":          "a@b.com",
		"address_city":   "Recife",
		"addressZipcode": "50000-000",
	}
	bank := entities.Draft{
		"agency":            "0001",
		"bank_account":      "123-4",
		"bank_account_type": "poupanca",
		"holderName":        "Fulano",
		"pix_key":           "pix",
	}
	menu := &entities.MenuDraft{MachinesQty: 4}

	m := buildMerchant("12345678000195", personal, bank, menu)

	assert.Equal(t, "Camel PDV", m.PdvName)
	assert.Equal(t, entities.PersonTypePJ, m.PersonType)
	assert.Equal(t, "Snake Name", m.FullName)
	assert.Equal(t, "a@b.com", m.Email.String)
	assert.Equal(t, "Recife", m.AddressCity.String)
	assert.Equal(t, "50000-000", m.AddressZipcode.String)
	assert.False(t, m.Phone.Valid)
	assert.Equal(t, "0001", m.BankAgency.String)
	assert.Equal(t, "123-4", m.BankAccount.String)
	assert.Equal(t, "poupanca", m.BankAccountType.String)
	assert.Equal(t, "Fulano", m.BankHolderName.String)
	assert.Equal(t, "pix", m.PixKey.String)
	assert.Equal(t, 4, m.MachinesQty)
}

func TestMerchantFields_EachColumnListedOnce(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range merchantFields {
		assert.False(t, seen[f.column], "duplicate column %s", f.column)
		seen[f.column] = true
		assert.NotEmpty(t, f.keys)
	}
	assert.Len(t, seen, 16)
}
