package usecases

import "time"

// MinDocumentLength is the shortest normalized document accepted (a CPF)
const MinDocumentLength = 11

// Reconciliation steps, in execution order
const (
	StepMerchant  = "merchant"
	StepEquipment = "equipment"
	StepMenu      = "menu"
	StepBanner    = "banner"
	StepStatus    = "status"
	StepCommit    = "commit"
)

// DefaultSubmitLockTTL bounds a wizard submission when no TTL is configured
const DefaultSubmitLockTTL = 30 * time.Second
