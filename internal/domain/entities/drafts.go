package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"
)

// Draft is the loosely typed payload of the personal and bank steps.
// Clients send either camelCase or snake_case keys; every read goes through
// the ordered resolver below.
type Draft map[string]interface{}

// lookup returns the value of the first key that is present with a non-nil value.
// An empty string counts as present.
func (d Draft) lookup(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := d[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of keys resolves.
func (d Draft) Has(keys ...string) bool {
	_, ok := d.lookup(keys...)
	return ok
}

// String resolves keys in order, returning "" when none is present.
func (d Draft) String(keys ...string) string {
	return d.StringOr("", keys...)
}

// StringOr resolves keys in order, returning def when none is present.
func (d Draft) StringOr(def string, keys ...string) string {
	v, ok := d.lookup(keys...)
	if !ok {
		return def
	}
	return stringify(v)
}

// NullString resolves keys in order; absence yields an invalid null.String.
func (d Draft) NullString(keys ...string) null.String {
	v, ok := d.lookup(keys...)
	if !ok {
		return null.String{}
	}
	return null.StringFrom(stringify(v))
}

// Int resolves keys in order and coerces the value to an int.
// Unparseable values fall back to def.
func (d Draft) Int(def int, keys ...string) int {
	v, ok := d.lookup(keys...)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return def
}

// Clone returns a shallow copy. A nil draft clones to nil.
func (d Draft) Clone() Draft {
	if d == nil {
		return nil
	}
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge returns a new draft with patch applied field by field over d.
func (d Draft) Merge(patch Draft) Draft {
	out := make(Draft, len(d)+len(patch))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// DraftSlot names one of the five per-step drafts.
type DraftSlot string

const (
	SlotPersonal  DraftSlot = "personal"
	SlotBank      DraftSlot = "bank"
	SlotEquipment DraftSlot = "equipment"
	SlotMenu      DraftSlot = "menu"
	SlotBanner    DraftSlot = "banner"
)

// Drafts holds the in-session answers. Personal and bank merge over the
// previous value; equipment, menu and banner are replaced wholesale.
type Drafts struct {
	Personal  Draft           `json:"personal,omitempty"`
	Bank      Draft           `json:"bank,omitempty"`
	Equipment *EquipmentDraft `json:"equipment,omitempty"`
	Menu      *MenuDraft      `json:"menu,omitempty"`
	Banner    *BannerDraft    `json:"banner,omitempty"`
}

// MergePersonal merges patch over base (or over the stored draft when one exists).
func (d *Drafts) MergePersonal(base, patch Draft) {
	if d.Personal != nil {
		base = d.Personal
	}
	d.Personal = base.Merge(patch)
}

// MergeBank merges patch over base (or over the stored draft when one exists).
func (d *Drafts) MergeBank(base, patch Draft) {
	if d.Bank != nil {
		base = d.Bank
	}
	d.Bank = base.Merge(patch)
}

func (d *Drafts) ReplaceEquipment(e *EquipmentDraft) { d.Equipment = e }

func (d *Drafts) ReplaceMenu(m *MenuDraft) { d.Menu = m }

func (d *Drafts) ReplaceBanner(b *BannerDraft) { d.Banner = b }

// Has reports whether slot holds an in-session value.
func (d *Drafts) Has(slot DraftSlot) bool {
	switch slot {
	case SlotPersonal:
		return d.Personal != nil
	case SlotBank:
		return d.Bank != nil
	case SlotEquipment:
		return d.Equipment != nil
	case SlotMenu:
		return d.Menu != nil
	case SlotBanner:
		return d.Banner != nil
	}
	return false
}

// Clear empties every slot.
func (d *Drafts) Clear() {
	*d = Drafts{}
}
