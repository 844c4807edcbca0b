package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type PersonType string

const (
	PersonTypePF PersonType = "PF"
	PersonTypePJ PersonType = "PJ"
)

type BankAccountType string

const (
	BankAccountChecking BankAccountType = "corrente"
	BankAccountSavings  BankAccountType = "poupanca"
)

// Merchant is the committed record of a vendor's point of sale
type Merchant struct {
	ID              uuid.UUID   `json:"id"`
	PdvName         string      `json:"pdvName"`
	PersonType      PersonType  `json:"personType"`
	CpfCnpj         string      `json:"cpfCnpj"`
	FullName        string      `json:"fullName"`
	Email           null.String `json:"email"`
	Phone           null.String `json:"phone"`
	AddressFull     null.String `json:"addressFull"`
	AddressCity     null.String `json:"addressCity"`
	AddressState    null.String `json:"addressState"`
	AddressZipcode  null.String `json:"addressZipcode"`
	BankAccountType null.String `json:"bankAccountType"`
	BankName        null.String `json:"bankName"`
	BankAgency      null.String `json:"bankAgency"`
	BankAccount     null.String `json:"bankAccount"`
	BankHolderDoc   null.String `json:"bankHolderDoc"`
	BankHolderName  null.String `json:"bankHolderName"`
	PixKey          null.String `json:"pixKey"`
	MachinesQty     int         `json:"machinesQty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// PersonalPrefill is the personal step in the shape the forms use
type PersonalPrefill struct {
	PersonType      string `json:"personType"`
	CpfCnpj         string `json:"cpfCnpj"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PdvName         string `json:"pdvName"`
	AddressFull     string `json:"addressFull"`
	AddressCity     string `json:"addressCity"`
	AddressState    string `json:"addressState"`
	AddressZipcode  string `json:"addressZipcode"`
	AddressCombined string `json:"addressCombined"`
}

// BankPrefill is the bank step in the shape the forms use
type BankPrefill struct {
	AccountType string `json:"accountType"`
	BankName    string `json:"bankName"`
	Agency      string `json:"agency"`
	Account     string `json:"account"`
	HolderDoc   string `json:"holderDoc"`
	HolderName  string `json:"holderName"`
	PixKey      string `json:"pixKey"`
}

type MerchantPrefill struct {
	Personal PersonalPrefill `json:"personal"`
	Bank     BankPrefill     `json:"bank"`
}

// Prefill renders the merchant with every absent field defaulted.
func (m *Merchant) Prefill() *MerchantPrefill {
	personType := string(m.PersonType)
	if personType == "" {
		personType = string(PersonTypePF)
	}
	accountType := m.BankAccountType.String
	if accountType == "" {
		accountType = string(BankAccountChecking)
	}
	return &MerchantPrefill{
		Personal: PersonalPrefill{
			PersonType:      personType,
			CpfCnpj:         m.CpfCnpj,
			FullName:        m.FullName,
			Email:           m.Email.String,
			Phone:           m.Phone.String,
			PdvName:         m.PdvName,
			AddressFull:     m.AddressFull.String,
			AddressCity:     m.AddressCity.String,
			AddressState:    m.AddressState.String,
			AddressZipcode:  m.AddressZipcode.String,
			AddressCombined: BuildAddressCombined(m.AddressFull.String, m.AddressCity.String, m.AddressState.String, m.AddressZipcode.String),
		},
		Bank: BankPrefill{
			AccountType: accountType,
			BankName:    m.BankName.String,
			Agency:      m.BankAgency.String,
			Account:     m.BankAccount.String,
			HolderDoc:   m.BankHolderDoc.String,
			HolderName:  m.BankHolderName.String,
			PixKey:      m.PixKey.String,
		},
	}
}

// Draft converts the prefill to a personal draft keyed like client payloads.
func (p PersonalPrefill) Draft() Draft {
	return Draft{
		"personType":      p.PersonType,
		"cpfCnpj":         p.CpfCnpj,
		"fullName":        p.FullName,
		"email":           p.Email,
		"phone":           p.Phone,
		"pdvName":         p.PdvName,
		"addressFull":     p.AddressFull,
		"addressCity":     p.AddressCity,
		"addressState":    p.AddressState,
		"addressZipcode":  p.AddressZipcode,
		"addressCombined": p.AddressCombined,
	}
}

// Draft converts the prefill to a bank draft keyed like client payloads.
func (b BankPrefill) Draft() Draft {
	return Draft{
		"accountType": b.AccountType,
		"bankName":    b.BankName,
		"agency":      b.Agency,
		"account":     b.Account,
		"holderDoc":   b.HolderDoc,
		"holderName":  b.HolderName,
		"pixKey":      b.PixKey,
	}
}

// BuildAddressCombined joins the address parts as "full • city - state • CEP zip",
// skipping empty parts.
func BuildAddressCombined(full, city, state, zip string) string {
	parts := make([]string, 0, 3)
	if v := strings.TrimSpace(full); v != "" {
		parts = append(parts, v)
	}
	cityState := make([]string, 0, 2)
	if v := strings.TrimSpace(city); v != "" {
		cityState = append(cityState, v)
	}
	if v := strings.TrimSpace(state); v != "" {
		cityState = append(cityState, v)
	}
	if len(cityState) > 0 {
		parts = append(parts, strings.Join(cityState, " - "))
	}
	if v := strings.TrimSpace(zip); v != "" {
		parts = append(parts, "CEP "+v)
	}
	return strings.Join(parts, " • ")
}
