package usecases

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
)

func completePersonal() entities.Draft {
	return entities.Draft{
		"pdvName":        "Barraca",
		"personType":     "PF",
		"cpfCnpj":        "12345678901",
		"fullName":       "Maria",
		"email":          "maria@example.com",
		"phone":          "11999990000",
		"addressFull":    "Rua A, 1",
		"addressCity":    "São Paulo",
		"addressState":   "SP",
		"addressZipcode": "01000-000",
	}
}

func completeBank() entities.Draft {
	return entities.Draft{
		"accountType": "corrente",
		"bankName":    "Banco X",
		"agency":      "0001",
		"account":     "123-4",
		"holderDoc":   "12345678901",
		"holderName":  "Maria",
		"pixKey":      "maria@example.com",
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	return vErr.Field
}

func TestValidateStep_Personal(t *testing.T) {
	require.NoError(t, validateStep(entities.StepPersonal, completePersonal()))

	snake := entities.Draft{}
	for k, v := range completePersonal() {
		snake[k] = v
	}
	delete(snake, "pdvName")
	snake["pdv_name"] = "Barraca"
	require.NoError(t, validateStep(entities.StepPersonal, snake))

	missing := completePersonal()
	missing["email"] = "   "
	err := validateStep(entities.StepPersonal, missing)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	assert.Equal(t, "email", fieldOf(t, err))

	badType := completePersonal()
	badType["personType"] = "XX"
	assert.Equal(t, "personType", fieldOf(t, validateStep(entities.StepPersonal, badType)))
}

func TestValidateStep_Bank(t *testing.T) {
	require.NoError(t, validateStep(entities.StepBank, completeBank()))

	bad := completeBank()
	bad["accountType"] = "investimento"
	assert.Equal(t, "accountType", fieldOf(t, validateStep(entities.StepBank, bad)))

	missing := completeBank()
	delete(missing, "pixKey")
	assert.Equal(t, "pixKey", fieldOf(t, validateStep(entities.StepBank, missing)))
}

func TestValidateStep_Equipment(t *testing.T) {
	ok := &entities.EquipmentDraft{
		Items:      []entities.EquipmentItemDraft{{Name: "Fritadeira", Qty: 2}},
		Outlets220: 1,
	}
	require.NoError(t, validateStep(entities.StepEquipment, ok))

	noItems := &entities.EquipmentDraft{Items: []entities.EquipmentItemDraft{}, Outlets110: 1}
	assert.Equal(t, "items", fieldOf(t, validateStep(entities.StepEquipment, noItems)))

	zeroQty := &entities.EquipmentDraft{Items: []entities.EquipmentItemDraft{{Name: "Geladeira"}}, Outlets110: 1}
	assert.Equal(t, "items[0].qty", fieldOf(t, validateStep(entities.StepEquipment, zeroQty)))

	noOutlets := &entities.EquipmentDraft{Items: []entities.EquipmentItemDraft{{Name: "Geladeira", Qty: 1}}}
	assert.Equal(t, "outlets", fieldOf(t, validateStep(entities.StepEquipment, noOutlets)))

	otherNoLabel := &entities.EquipmentDraft{Items: []entities.EquipmentItemDraft{{Name: "Geladeira", Qty: 1}}, OtherOutletsQty: 2}
	assert.Equal(t, "otherOutletsLabel", fieldOf(t, validateStep(entities.StepEquipment, otherNoLabel)))

	var nilDraft *entities.EquipmentDraft
	assert.Error(t, validateStep(entities.StepEquipment, nilDraft))
}

func TestValidateStep_Menu(t *testing.T) {
	ok := &entities.MenuDraft{
		MachinesQty: 1,
		Categories: []entities.MenuCategoryDraft{
			{Name: "Bebidas", Products: []entities.MenuProductDraft{{Name: "Água", Price: 3.5}}},
		},
	}
	require.NoError(t, validateStep(entities.StepMenu, ok))

	longName := &entities.MenuDraft{
		MachinesQty: 1,
		Categories: []entities.MenuCategoryDraft{
			{Name: "Bebidas", Products: []entities.MenuProductDraft{{Name: strings.Repeat("a", 41), Price: 1}}},
		},
	}
	assert.Equal(t, "categories[0].products[0].name", fieldOf(t, validateStep(entities.StepMenu, longName)))

	freePrice := &entities.MenuDraft{
		MachinesQty: 1,
		Categories: []entities.MenuCategoryDraft{
			{Name: "Bebidas", Products: []entities.MenuProductDraft{{Name: "Água", Price: 0}}},
		},
	}
	assert.Equal(t, "categories[0].products[0].price", fieldOf(t, validateStep(entities.StepMenu, freePrice)))

	emptyCategory := &entities.MenuDraft{
		MachinesQty: 1,
		Categories:  []entities.MenuCategoryDraft{{Name: "Bebidas", Products: []entities.MenuProductDraft{}}},
	}
	assert.Equal(t, "categories[0].products", fieldOf(t, validateStep(entities.StepMenu, emptyCategory)))

	noMachines := &entities.MenuDraft{Categories: ok.Categories}
	assert.Equal(t, "machinesQty", fieldOf(t, validateStep(entities.StepMenu, noMachines)))
}

func TestValidateStep_Banner(t *testing.T) {
	require.NoError(t, validateStep(entities.StepBanner, &entities.BannerDraft{BannerName: "  Pastel  ", Theme: "neon"}))

	assert.Equal(t, "banner_name", fieldOf(t, validateStep(entities.StepBanner, &entities.BannerDraft{BannerName: "   "})))
	assert.Equal(t, "banner_name", fieldOf(t, validateStep(entities.StepBanner, &entities.BannerDraft{BannerName: strings.Repeat("x", 29)})))
	assert.Equal(t, "accent", fieldOf(t, validateStep(entities.StepBanner, &entities.BannerDraft{BannerName: "ok", Accent: "pink"})))
}

func TestValidateStep_UnexpectedPayload(t *testing.T) {
	assert.Error(t, validateStep(entities.StepMenu, entities.Draft{}))
	assert.Error(t, validateStep(entities.StepPersonal, 42))
}
