package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMachinesQty is reported when a merchant has no stored quantity
const DefaultMachinesQty = 2

// MaxProductNameLength bounds menu_products.name
const MaxProductNameLength = 40

var hundred = decimal.NewFromInt(100)

type MenuCategory struct {
	ID         uuid.UUID `json:"id"`
	MerchantID uuid.UUID `json:"merchantId"`
	Name       string    `json:"name"`
	Position   int       `json:"position"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

type MenuProduct struct {
	ID         uuid.UUID `json:"id"`
	MerchantID uuid.UUID `json:"merchantId"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Position   int       `json:"position"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MenuSection is a category with its products, the unit of a menu replace
type MenuSection struct {
	Category *MenuCategory
	Products []*MenuProduct
}

type MenuProductDraft struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name" validate:"required,max=40"`
	Price float64 `json:"price" validate:"gt=0"`
}

type MenuCategoryDraft struct {
	ID       string             `json:"id,omitempty"`
	Name     string             `json:"name" validate:"required"`
	Products []MenuProductDraft `json:"products" validate:"min=1,dive"`
}

// MenuDraft is the menu step payload and its read-side view
type MenuDraft struct {
	MachinesQty int                 `json:"machinesQty" validate:"gte=1"`
	Categories  []MenuCategoryDraft `json:"categories" validate:"min=1,dive"`
}

// PriceToCents converts a currency amount to integer cents, rounding half away from zero.
func PriceToCents(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(hundred).Round(0).IntPart()
}

// CentsToPrice converts integer cents back to a currency amount.
func CentsToPrice(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// Sections builds the rows for the draft: categories and products get
// positions 0..n-1 in draft order and are active.
func (d *MenuDraft) Sections(merchantID uuid.UUID, newID func() uuid.UUID) []MenuSection {
	sections := make([]MenuSection, 0, len(d.Categories))
	for ci, c := range d.Categories {
		cat := &MenuCategory{
			ID:         newID(),
			MerchantID: merchantID,
			Name:       c.Name,
			Position:   ci,
			IsActive:   true,
		}
		products := make([]*MenuProduct, 0, len(c.Products))
		for pi, p := range c.Products {
			products = append(products, &MenuProduct{
				ID:         newID(),
				MerchantID: merchantID,
				CategoryID: cat.ID,
				Name:       p.Name,
				PriceCents: PriceToCents(p.Price),
				Position:   pi,
				IsActive:   true,
			})
		}
		sections = append(sections, MenuSection{Category: cat, Products: products})
	}
	return sections
}

// NewMenuDraft renders stored categories and products as a draft. Only active
// products are included; both slices are expected in position order.
func NewMenuDraft(machinesQty int, categories []*MenuCategory, products []*MenuProduct) *MenuDraft {
	if machinesQty <= 0 {
		machinesQty = DefaultMachinesQty
	}
	byCategory := make(map[uuid.UUID][]MenuProductDraft, len(categories))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], MenuProductDraft{
			ID:    p.ID.String(),
			Name:  p.Name,
			Price: CentsToPrice(p.PriceCents),
		})
	}

	d := &MenuDraft{MachinesQty: machinesQty, Categories: make([]MenuCategoryDraft, 0, len(categories))}
	for _, c := range categories {
		prods := byCategory[c.ID]
		if prods == nil {
			prods = []MenuProductDraft{}
		}
		d.Categories = append(d.Categories, MenuCategoryDraft{ID: c.ID.String(), Name: c.Name, Products: prods})
	}
	return d
}

// DefaultMenuDraft is the empty menu form
func DefaultMenuDraft() *MenuDraft {
	return &MenuDraft{MachinesQty: DefaultMachinesQty, Categories: []MenuCategoryDraft{}}
}
