package entities

import "github.com/google/uuid"

// SubmissionInput carries everything the reconciler writes
type SubmissionInput struct {
	VendorID string
	Mode     OnboardingMode
	Existing ExistingIDs
	// ClientMerchantID is used in edit mode only when the lookup had none.
	ClientMerchantID *uuid.UUID

	Personal  Draft
	Bank      Draft
	Equipment *EquipmentDraft
	Menu      *MenuDraft
	Banner    *BannerDraft
}

// SubmissionResult is returned after status linkage
type SubmissionResult struct {
	Mode               OnboardingMode `json:"mode"`
	MerchantID         uuid.UUID      `json:"merchantId"`
	EquipmentProfileID *uuid.UUID     `json:"equipmentProfileId"`
	BannerProfileID    *uuid.UUID     `json:"bannerProfileId"`
}
