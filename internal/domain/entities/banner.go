package entities

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxBannerNameLength bounds vendor_banners.banner_name
const MaxBannerNameLength = 28

type BannerTheme string

const (
	BannerThemeClassic BannerTheme = "classic"
	BannerThemeNeon    BannerTheme = "neon"
	BannerThemeDark    BannerTheme = "dark"
)

type BannerAccent string

const (
	BannerAccentOrange BannerAccent = "orange"
	BannerAccentBlue   BannerAccent = "blue"
	BannerAccentPurple BannerAccent = "purple"
	BannerAccentGreen  BannerAccent = "green"
)

// VendorBanner is the display banner of a merchant, at most one per merchant
type VendorBanner struct {
	ID         uuid.UUID    `json:"id"`
	MerchantID uuid.UUID    `json:"merchant_id"`
	BannerName string       `json:"banner_name"`
	Theme      BannerTheme  `json:"theme"`
	Accent     BannerAccent `json:"accent"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// BannerDraft is the banner step payload. It decodes both banner_name and bannerName.
type BannerDraft struct {
	BannerName string `json:"banner_name" validate:"banner_name"`
	Theme      string `json:"theme" validate:"omitempty,oneof=classic neon dark"`
	Accent     string `json:"accent" validate:"omitempty,oneof=orange blue purple green"`
}

func (d *BannerDraft) UnmarshalJSON(b []byte) error {
	var raw Draft
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.BannerName = raw.String("banner_name", "bannerName")
	d.Theme = raw.String("theme")
	d.Accent = raw.String("accent")
	return nil
}

// TrimmedName is the name as it is stored
func (d *BannerDraft) TrimmedName() string {
	if d == nil {
		return ""
	}
	return strings.TrimSpace(d.BannerName)
}

// Persistable reports whether the draft produces a banner row
func (d *BannerDraft) Persistable() bool {
	return d.TrimmedName() != ""
}

// Banner builds the row for the draft, defaulting theme and accent.
func (d *BannerDraft) Banner(id, merchantID uuid.UUID) *VendorBanner {
	theme := BannerTheme(d.Theme)
	if theme == "" {
		theme = BannerThemeClassic
	}
	accent := BannerAccent(d.Accent)
	if accent == "" {
		accent = BannerAccentOrange
	}
	return &VendorBanner{
		ID:         id,
		MerchantID: merchantID,
		BannerName: d.TrimmedName(),
		Theme:      theme,
		Accent:     accent,
	}
}

// ValidBannerName reports whether the trimmed name has 1..28 characters
func ValidBannerName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 1 && n <= MaxBannerNameLength
}

// NewBannerDraft renders a stored banner as a draft
func NewBannerDraft(b *VendorBanner) *BannerDraft {
	return &BannerDraft{BannerName: b.BannerName, Theme: string(b.Theme), Accent: string(b.Accent)}
}

// DefaultBannerDraft is the empty banner form
func DefaultBannerDraft() *BannerDraft {
	return &BannerDraft{Theme: string(BannerThemeClassic), Accent: string(BannerAccentOrange)}
}
