package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/interfaces/http/response"
	"vendor-onboarding.backend/internal/usecases"
)

type PrefillService interface {
	GetMerchant(ctx context.Context, merchantID uuid.UUID) (*entities.MerchantPrefill, error)
	GetEquipment(ctx context.Context, profileID uuid.UUID) (*entities.EquipmentDraft, error)
	GetMenu(ctx context.Context, merchantID uuid.UUID) (*entities.MenuDraft, error)
	GetBanner(ctx context.Context, merchantID uuid.UUID) (*entities.VendorBanner, error)
	SaveBanner(ctx context.Context, merchantID uuid.UUID, draft *entities.BannerDraft) (*entities.VendorBanner, error)
	FindProspect(ctx context.Context, raw string) (*usecases.ProspectPrefill, error)
}

// PrefillHandler serves stored records in the shape of the wizard forms
type PrefillHandler struct {
	prefill PrefillService
}

func NewPrefillHandler(prefill PrefillService) *PrefillHandler {
	return &PrefillHandler{prefill: prefill}
}

// GetMerchant handles GET /api/v1/merchant?merchantId=
func (h *PrefillHandler) GetMerchant(c *gin.Context) {
	merchantID, err := requiredUUID(c, "merchantId")
	if err != nil {
		response.Error(c, err)
		return
	}

	prefill, err := h.prefill.GetMerchant(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, prefill)
}

// GetEquipmentProfile handles GET /api/v1/equipment-profile?id=
func (h *PrefillHandler) GetEquipmentProfile(c *gin.Context) {
	profileID, err := requiredUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	draft, err := h.prefill.GetEquipment(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, draft)
}

// GetMenu handles GET /api/v1/menu?merchantId=
func (h *PrefillHandler) GetMenu(c *gin.Context) {
	merchantID, err := requiredUUID(c, "merchantId")
	if err != nil {
		response.Error(c, err)
		return
	}

	menu, err := h.prefill.GetMenu(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, menu)
}

// GetBanner handles GET /api/v1/banner?merchantId=
func (h *PrefillHandler) GetBanner(c *gin.Context) {
	merchantID, err := requiredUUID(c, "merchantId")
	if err != nil {
		response.Error(c, err)
		return
	}

	banner, err := h.prefill.GetBanner(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"merchant_id": banner.MerchantID,
		"banner_name": banner.BannerName,
		"theme":       banner.Theme,
		"accent":      banner.Accent,
	})
}

// SaveBanner handles POST /api/v1/banner
func (h *PrefillHandler) SaveBanner(c *gin.Context) {
	var body entities.Draft
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, invalidBody())
		return
	}

	merchantID, err := optionalUUID("merchantId", body.String("merchantId", "merchant_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if merchantID == nil {
		response.Error(c, domainerrors.NewValidationError("merchantId", "merchantId é obrigatório"))
		return
	}

	draft := &entities.BannerDraft{
		BannerName: body.String("bannerName", "banner_name"),
		Theme:      body.String("theme"),
		Accent:     body.String("accent"),
	}
	banner, err := h.prefill.SaveBanner(c.Request.Context(), *merchantID, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, banner)
}

// GetProspect handles GET /api/v1/prospects/:document
func (h *PrefillHandler) GetProspect(c *gin.Context) {
	prospect, err := h.prefill.FindProspect(c.Request.Context(), c.Param("document"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"row":      prospect.Row,
		"personal": prospect.Personal,
		"bank":     prospect.Bank,
	})
}
