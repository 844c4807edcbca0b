package usecases

import (
	"strings"

	"vendor-onboarding.backend/internal/domain/entities"
	"vendor-onboarding.backend/pkg/document"
)

func clean(v string) string {
	return strings.TrimSpace(v)
}

// pickPersonType reads person_type loosely, then falls back to the presence of a CNPJ
func pickPersonType(row *entities.SheetRow) entities.PersonType {
	pt := strings.ToLower(clean(row.PersonType))
	switch {
	case strings.Contains(pt, "pj"):
		return entities.PersonTypePJ
	case strings.Contains(pt, "pf"):
		return entities.PersonTypePF
	case len(document.Normalize(row.PjCnpj)) >= 14:
		return entities.PersonTypePJ
	}
	return entities.PersonTypePF
}

func pickHolderDoc(row *entities.SheetRow, vendorID string) string {
	if cnpj := document.Normalize(row.PjCnpj); len(cnpj) >= 14 {
		return cnpj
	}
	if cpf := document.Normalize(row.PfCpf); len(cpf) >= 11 {
		return cpf
	}
	return vendorID
}

func pickHolderName(row *entities.SheetRow) string {
	for _, v := range []string{row.PixFavoredName, row.PfFullName, row.PjLegalRepresentativeName} {
		if v = clean(v); v != "" {
			return v
		}
	}
	return ""
}

// SheetPersonalDraft maps a prospect row to the personal step
func SheetPersonalDraft(row *entities.SheetRow, vendorID string) entities.Draft {
	personType := pickPersonType(row)

	fullName, pdvName := clean(row.PfFullName), clean(row.PfBrandName)
	if personType == entities.PersonTypePJ {
		fullName, pdvName = clean(row.PjLegalRepresentativeName), clean(row.PjBrandName)
	}

	prefill := entities.PersonalPrefill{
		PersonType:     string(personType),
		CpfCnpj:        vendorID,
		FullName:       fullName,
		Email:          clean(row.ContactEmail),
		Phone:          clean(row.ContactPhone),
		PdvName:        pdvName,
		AddressFull:    clean(row.AddressFull),
		AddressCity:    clean(row.AddressCity),
		AddressState:   clean(row.AddressState),
		AddressZipcode: clean(row.AddressZipcode),
	}
	prefill.AddressCombined = entities.BuildAddressCombined(prefill.AddressFull, prefill.AddressCity, prefill.AddressState, prefill.AddressZipcode)
	return prefill.Draft()
}

// SheetBankDraft maps a prospect row to the bank step
func SheetBankDraft(row *entities.SheetRow, vendorID string) entities.Draft {
	return entities.BankPrefill{
		AccountType: string(entities.BankAccountChecking),
		BankName:    clean(row.BankName),
		Agency:      clean(row.BankAgency),
		Account:     clean(row.BankAccount),
		HolderDoc:   pickHolderDoc(row, vendorID),
		HolderName:  pickHolderName(row),
		PixKey:      clean(row.PixKey),
	}.Draft()
}
