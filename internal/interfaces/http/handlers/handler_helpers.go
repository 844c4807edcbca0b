package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
)

// requiredUUID parses a mandatory uuid query parameter
func requiredUUID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return uuid.Nil, domainerrors.NewValidationError(name, name+" é obrigatório")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError(name, name+" inválido")
	}
	return id, nil
}

// optionalUUID treats blank as absent
func optionalUUID(field, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.NewValidationError(field, field+" inválido")
	}
	return &id, nil
}

func parseMode(raw string) (entities.OnboardingMode, error) {
	mode, ok := entities.ParseOnboardingMode(strings.TrimSpace(raw))
	if !ok {
		return "", domainerrors.NewValidationError("mode", "mode deve ser create ou edit")
	}
	return mode, nil
}

func submissionFields(r *entities.SubmissionResult) gin.H {
	return gin.H{
		"mode":               r.Mode,
		"merchantId":         r.MerchantID,
		"equipmentProfileId": r.EquipmentProfileID,
		"bannerProfileId":    r.BannerProfileID,
	}
}

func invalidBody() error {
	return domainerrors.BadRequest("Invalid request body")
}
