package entities

import (
	"time"

	"github.com/google/uuid"
)

// VendorStatus is the lifecycle status of a provisioned vendor
type VendorStatus string

const (
	VendorStatusSelected          VendorStatus = "selecionado"
	VendorStatusAwaitingSignature VendorStatus = "aguardando_assinatura"
	VendorStatusAwaitingPayment   VendorStatus = "aguardando_pagamento"
	VendorStatusConfirmed         VendorStatus = "confirmado"
	VendorStatusWithdrawn         VendorStatus = "desistente"
)

// Valid reports whether s is one of the known statuses
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusSelected, VendorStatusAwaitingSignature, VendorStatusAwaitingPayment,
		VendorStatusConfirmed, VendorStatusWithdrawn:
		return true
	}
	return false
}

// OnboardingMode is create (first submission) or edit
type OnboardingMode string

const (
	ModeUnspecified OnboardingMode = ""
	ModeCreate      OnboardingMode = "create"
	ModeEdit        OnboardingMode = "edit"
)

// ParseOnboardingMode accepts "", "create" and "edit".
func ParseOnboardingMode(s string) (OnboardingMode, bool) {
	switch OnboardingMode(s) {
	case ModeUnspecified, ModeCreate, ModeEdit:
		return OnboardingMode(s), true
	}
	return ModeUnspecified, false
}

// VendorStatusRecord is one row of vendor_status, keyed by the normalized document
type VendorStatusRecord struct {
	VendorID           string       `json:"vendor_id"`
	Status             VendorStatus `json:"status"`
	MerchantID         *uuid.UUID   `json:"merchant_id"`
	EquipmentProfileID *uuid.UUID   `json:"equipment_profile_id"`
	BannerProfileID    *uuid.UUID   `json:"banner_profile_id"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// HasMerchant reports whether a submission has been linked to this vendor
func (v *VendorStatusRecord) HasMerchant() bool {
	return v != nil && v.MerchantID != nil && *v.MerchantID != uuid.Nil
}

// ExistingIDs are the stored identifiers a submission reuses
type ExistingIDs struct {
	MerchantID         *uuid.UUID `json:"merchantId"`
	EquipmentProfileID *uuid.UUID `json:"equipmentProfileId"`
	BannerProfileID    *uuid.UUID `json:"bannerProfileId"`
}

// VendorLookupResult is the outcome of a successful lookup
type VendorLookupResult struct {
	Vendor      *VendorStatusRecord `json:"vendor"`
	CanContinue bool                `json:"canContinue"`
	Mode        OnboardingMode      `json:"mode"`
	// Recovered is set when the merchant id was adopted from an orphaned
	// merchant row instead of the status record.
	Recovered bool `json:"recovered,omitempty"`
}

// Existing returns the identifiers carried by the looked-up record
func (r *VendorLookupResult) Existing() ExistingIDs {
	if r == nil || r.Vendor == nil {
		return ExistingIDs{}
	}
	return ExistingIDs{
		MerchantID:         r.Vendor.MerchantID,
		EquipmentProfileID: r.Vendor.EquipmentProfileID,
		BannerProfileID:    r.Vendor.BannerProfileID,
	}
}

// ModeResolution is the effective mode plus the identifiers to reuse
type ModeResolution struct {
	EffectiveMode OnboardingMode `json:"effectiveMode"`
	ExistingIDs
}
