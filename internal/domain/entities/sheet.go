package entities

// SheetRow is one prospect row of the onboarding spreadsheet. Columns are
// kept as raw strings.
type SheetRow struct {
	PersonType string `json:"person_type,omitempty"`

	PfFullName  string `json:"pf_full_name,omitempty"`
	PfCpf       string `json:"pf_cpf,omitempty"`
	PfBrandName string `json:"pf_brand_name,omitempty"`

	PjCnpj                    string `json:"pj_cnpj,omitempty"`
	PjLegalRepresentativeName string `json:"pj_legal_representative_name,omitempty"`
	PjLegalRepresentativeCpf  string `json:"pj_legal_representative_cpf,omitempty"`
	PjStateRegistration       string `json:"pj_state_registration,omitempty"`
	PjBrandName               string `json:"pj_brand_name,omitempty"`

	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`

	AddressFull    string `json:"address_full,omitempty"`
	AddressZipcode string `json:"address_zipcode,omitempty"`
	AddressCity    string `json:"address_city,omitempty"`
	AddressState   string `json:"address_state,omitempty"`

	BankName    string `json:"bank_name,omitempty"`
	BankAgency  string `json:"bank_agency,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`

	PixKey         string `json:"pix_key,omitempty"`
	PixFavoredName string `json:"pix_favored_name,omitempty"`

	TermsAccepted string `json:"terms_accepted,omitempty"`
	TypeTend      string `json:"type_tend,omitempty"`
}
