package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendor-onboarding.backend/internal/domain/entities"
	"vendor-onboarding.backend/internal/interfaces/http/response"
)

type VendorLookupService interface {
	Lookup(ctx context.Context, raw string) (*entities.VendorLookupResult, error)
}

// VendorHandler resolves a document to its provisioned vendor
type VendorHandler struct {
	lookup VendorLookupService
}

func NewVendorHandler(lookup VendorLookupService) *VendorHandler {
	return &VendorHandler{lookup: lookup}
}

type vendorLookupRequest struct {
	CpfCnpj string `json:"cpfCnpj"`
}

// Lookup handles POST /api/v1/vendor
func (h *VendorHandler) Lookup(c *gin.Context) {
	var req vendorLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody())
		return
	}

	result, err := h.lookup.Lookup(c.Request.Context(), req.CpfCnpj)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"vendor":      result.Vendor,
		"canContinue": result.CanContinue,
		"mode":        result.Mode,
		"recovered":   result.Recovered,
	})
}
