package usecases

import (
	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
)

// ResolveMode picks the effective submission mode. A linked merchant forces
// edit; asking explicitly for create in that case is a conflict. Otherwise the
// preference wins, defaulting to create.
func ResolveMode(result *entities.VendorLookupResult, preference entities.OnboardingMode) (*entities.ModeResolution, error) {
	existing := result.Existing()

	if existing.MerchantID != nil {
		if preference == entities.ModeCreate {
			return nil, domainerrors.ErrSubmissionExists
		}
		return &entities.ModeResolution{EffectiveMode: entities.ModeEdit, ExistingIDs: existing}, nil
	}

	mode := preference
	if mode == entities.ModeUnspecified {
		mode = entities.ModeCreate
	}
	return &entities.ModeResolution{EffectiveMode: mode, ExistingIDs: existing}, nil
}
