package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendor-onboarding.backend/internal/domain/entities"
	"vendor-onboarding.backend/internal/interfaces/http/response"
	"vendor-onboarding.backend/internal/usecases"
)

type OnboardingService interface {
	Submit(ctx context.Context, req *usecases.SubmitRequest) (*entities.SubmissionResult, error)
}

// OnboardingHandler accepts a whole submission in one request
type OnboardingHandler struct {
	onboarding OnboardingService
}

func NewOnboardingHandler(onboarding OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

type submitRequestBody struct {
	VendorID           string `json:"vendorId"`
	Mode               string `json:"mode"`
	MerchantID         string `json:"merchantId"`
	EquipmentProfileID string `json:"equipmentProfileId"`
	BannerProfileID    string `json:"bannerProfileId"`

	PersonalData  entities.Draft           `json:"personalData"`
	BankData      entities.Draft           `json:"bankData"`
	EquipmentData *entities.EquipmentDraft `json:"equipmentData"`
	MenuData      *entities.MenuDraft      `json:"menuData"`
	BannerData    *entities.BannerDraft    `json:"bannerData"`
}

func (b *submitRequestBody) toRequest() (*usecases.SubmitRequest, error) {
	mode, err := parseMode(b.Mode)
	if err != nil {
		return nil, err
	}
	req := &usecases.SubmitRequest{
		VendorID:  b.VendorID,
		Mode:      mode,
		Personal:  b.PersonalData,
		Bank:      b.BankData,
		Equipment: b.EquipmentData,
		Menu:      b.MenuData,
		Banner:    b.BannerData,
	}
	if req.MerchantID, err = optionalUUID("merchantId", b.MerchantID); err != nil {
		return nil, err
	}
	if req.EquipmentProfileID, err = optionalUUID("equipmentProfileId", b.EquipmentProfileID); err != nil {
		return nil, err
	}
	if req.BannerProfileID, err = optionalUUID("bannerProfileId", b.BannerProfileID); err != nil {
		return nil, err
	}
	return req, nil
}

// Submit handles POST /api/v1/onboarding/submit
func (h *OnboardingHandler) Submit(c *gin.Context) {
	var body submitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, invalidBody())
		return
	}

	req, err := body.toRequest()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.onboarding.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, submissionFields(result))
}
