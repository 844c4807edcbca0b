package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// EquipmentProfile describes a merchant's power requirements. One per merchant.
type EquipmentProfile struct {
	ID                uuid.UUID   `json:"id"`
	MerchantID        uuid.UUID   `json:"merchantId"`
	VendorID          string      `json:"vendorId"`
	Outlets110        int         `json:"outlets110"`
	Outlets220        int         `json:"outlets220"`
	OtherOutletsQty   int         `json:"otherOutletsQty"`
	OtherOutletsLabel null.String `json:"otherOutletsLabel"`
	Notes             null.String `json:"notes"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// EquipmentItem is one ordered entry of a profile
type EquipmentItem struct {
	ID                 uuid.UUID `json:"id"`
	EquipmentProfileID uuid.UUID `json:"equipmentProfileId"`
	Name               string    `json:"name"`
	Qty                int       `json:"qty"`
	Position           int       `json:"position"`
}

type EquipmentItemDraft struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
	Qty  int    `json:"qty" validate:"gte=1"`
}

// UnmarshalJSON defaults an absent or null qty to 1. Any number given is kept.
func (d *EquipmentItemDraft) UnmarshalJSON(data []byte) error {
	type plain EquipmentItemDraft
	p := plain{Qty: 1}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = EquipmentItemDraft(p)
	return nil
}

// EquipmentDraft is the equipment step payload and its read-side view
type EquipmentDraft struct {
	Items             []EquipmentItemDraft `json:"items" validate:"min=1,dive"`
	Outlets110        int                  `json:"outlets110" validate:"gte=0"`
	Outlets220        int                  `json:"outlets220" validate:"gte=0"`
	OtherOutletsQty   int                  `json:"otherOutletsQty" validate:"gte=0"`
	OtherOutletsLabel string               `json:"otherOutletsLabel" validate:"required_unless=OtherOutletsQty 0"`
	Notes             string               `json:"notes"`
}

// TotalOutlets sums every outlet class
func (d *EquipmentDraft) TotalOutlets() int {
	return d.Outlets110 + d.Outlets220 + d.OtherOutletsQty
}

// Profile builds the profile row for the draft
func (d *EquipmentDraft) Profile(id, merchantID uuid.UUID, vendorID string) *EquipmentProfile {
	return &EquipmentProfile{
		ID:                id,
		MerchantID:        merchantID,
		VendorID:          vendorID,
		Outlets110:        d.Outlets110,
		Outlets220:        d.Outlets220,
		OtherOutletsQty:   d.OtherOutletsQty,
		OtherOutletsLabel: optionalString(d.OtherOutletsLabel),
		Notes:             optionalString(d.Notes),
	}
}

// ItemsFor builds the item rows in draft order with positions 0..n-1.
// newID is called once per item.
func (d *EquipmentDraft) ItemsFor(profileID uuid.UUID, newID func() uuid.UUID) []*EquipmentItem {
	items := make([]*EquipmentItem, 0, len(d.Items))
	for i, it := range d.Items {
		items = append(items, &EquipmentItem{
			ID:                 newID(),
			EquipmentProfileID: profileID,
			Name:               it.Name,
			Qty:                it.Qty,
			Position:           i,
		})
	}
	return items
}

// NewEquipmentDraft renders a stored profile and its items as a draft.
// Items are expected in position order.
func NewEquipmentDraft(p *EquipmentProfile, items []*EquipmentItem) *EquipmentDraft {
	d := &EquipmentDraft{
		Items:             make([]EquipmentItemDraft, 0, len(items)),
		Outlets110:        p.Outlets110,
		Outlets220:        p.Outlets220,
		OtherOutletsQty:   p.OtherOutletsQty,
		OtherOutletsLabel: p.OtherOutletsLabel.String,
		Notes:             p.Notes.String,
	}
	for _, it := range items {
		d.Items = append(d.Items, EquipmentItemDraft{ID: it.ID.String(), Name: it.Name, Qty: it.Qty})
	}
	return d
}

// DefaultEquipmentDraft is the empty equipment form
func DefaultEquipmentDraft() *EquipmentDraft {
	return &EquipmentDraft{Items: []EquipmentItemDraft{}}
}

func optionalString(s string) null.String {
	return null.NewString(s, strings.TrimSpace(s) != "")
}
