package usecases

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
)

var validate = newStepValidator()

func newStepValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("banner_name", func(fl validator.FieldLevel) bool {
		return entities.ValidBannerName(fl.Field().String())
	})
	return v
}

type personalForm struct {
	PdvName        string `json:"pdvName" validate:"required"`
	PersonType     string `json:"personType" validate:"oneof=PF PJ"`
	CpfCnpj        string `json:"cpfCnpj" validate:"required"`
	FullName       string `json:"fullName" validate:"required"`
	Email          string `json:"email" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	AddressFull    string `json:"addressFull" validate:"required"`
	AddressCity    string `json:"addressCity" validate:"required"`
	AddressState   string `json:"addressState" validate:"required"`
	AddressZipcode string `json:"addressZipcode" validate:"required"`
}

func newPersonalForm(d entities.Draft) personalForm {
	return personalForm{
		PdvName:        strings.TrimSpace(d.String("pdvName", "pdv_name")),
		PersonType:     d.String("personType", "person_type"),
		CpfCnpj:        strings.TrimSpace(d.String("cpfCnpj", "cpf_cnpj")),
		FullName:       strings.TrimSpace(d.String("fullName", "full_name")),
		Email:          strings.TrimSpace(d.String("email")),
		Phone:          strings.TrimSpace(d.String("phone")),
		AddressFull:    strings.TrimSpace(d.String("addressFull", "address_full")),
		AddressCity:    strings.TrimSpace(d.String("addressCity", "address_city")),
		AddressState:   strings.TrimSpace(d.String("addressState", "address_state")),
		AddressZipcode: strings.TrimSpace(d.String("addressZipcode", "address_zipcode")),
	}
}

type bankForm struct {
	AccountType string `json:"accountType" validate:"oneof=corrente poupanca"`
	BankName    string `json:"bankName" validate:"required"`
	Agency      string `json:"agency" validate:"required"`
	Account     string `json:"account" validate:"required"`
	HolderDoc   string `json:"holderDoc" validate:"required"`
	HolderName  string `json:"holderName" validate:"required"`
	PixKey      string `json:"pixKey" validate:"required"`
}

func newBankForm(d entities.Draft) bankForm {
	return bankForm{
		AccountType: d.String("accountType", "bank_account_type"),
		BankName:    strings.TrimSpace(d.String("bankName", "bank_name")),
		Agency:      strings.TrimSpace(d.String("agency", "bank_agency")),
		Account:     strings.TrimSpace(d.String("account", "bank_account")),
		HolderDoc:   strings.TrimSpace(d.String("holderDoc", "bank_holder_doc")),
		HolderName:  strings.TrimSpace(d.String("holderName", "bank_holder_name")),
		PixKey:      strings.TrimSpace(d.String("pixKey", "pix_key")),
	}
}

// validateStep checks the value a step would store. Personal and bank are
// checked after merging, so a partial patch over a complete prefill passes.
func validateStep(step entities.WizardStep, value interface{}) error {
	var target interface{}
	switch v := value.(type) {
	case entities.Draft:
		switch step {
		case entities.StepPersonal:
			target = newPersonalForm(v)
		case entities.StepBank:
			target = newBankForm(v)
		default:
			return domainerrors.NewValidationError("step", fmt.Sprintf("unexpected payload for %s", step))
		}
	case *entities.EquipmentDraft:
		if v == nil {
			return domainerrors.NewValidationError("equipment", "required")
		}
		if err := structErr(validate.Struct(v)); err != nil {
			return err
		}
		if v.TotalOutlets() < 1 {
			return domainerrors.NewValidationError("outlets", "at least one outlet is required")
		}
		return nil
	case *entities.MenuDraft:
		if v == nil {
			return domainerrors.NewValidationError("menu", "required")
		}
		target = v
	case *entities.BannerDraft:
		if v == nil {
			return domainerrors.NewValidationError("banner", "required")
		}
		target = v
	default:
		return domainerrors.NewValidationError("step", fmt.Sprintf("unexpected payload for %s", step))
	}
	return structErr(validate.Struct(target))
}

// structErr reports the first failed field as a ValidationError
func structErr(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.SplitN(fe.Namespace(), ".", 2)
		name := fe.Field()
		if len(field) == 2 {
			name = field[1]
		}
		return domainerrors.NewValidationError(name, validationMessage(fe))
	}
	return domainerrors.NewValidationError("payload", err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return "obrigatório"
	case "oneof":
		return "deve ser um de: " + fe.Param()
	case "min":
		return "mínimo de " + fe.Param() + " item(ns)"
	case "max":
		return "máximo de " + fe.Param() + " caracteres"
	case "gte":
		return "deve ser maior ou igual a " + fe.Param()
	case "gt":
		return "deve ser maior que " + fe.Param()
	case "banner_name":
		return fmt.Sprintf("deve ter entre 1 e %d caracteres", entities.MaxBannerNameLength)
	}
	return "inválido"
}
