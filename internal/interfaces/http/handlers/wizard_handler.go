package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/interfaces/http/response"
	"vendor-onboarding.backend/internal/usecases"
)

type WizardService interface {
	Start(ctx context.Context, sessionID, rawDocument string, preference entities.OnboardingMode) (*entities.WizardSession, error)
	Get(ctx context.Context, id string) (*entities.WizardSession, error)
	Continue(ctx context.Context, id string) (*entities.WizardSession, error)
	SaveStep(ctx context.Context, id string, step entities.WizardStep, payload json.RawMessage) (*entities.WizardSession, error)
	Back(ctx context.Context, id string) (*entities.WizardSession, error)
	StepView(ctx context.Context, id string, step entities.WizardStep) (*usecases.StepView, error)
	Submit(ctx context.Context, id string) (*entities.WizardSession, error)
	Reset(ctx context.Context, id string) error
}

// WizardHandler exposes the server-side wizard sessions
type WizardHandler struct {
	wizard WizardService
}

func NewWizardHandler(wizard WizardService) *WizardHandler {
	return &WizardHandler{wizard: wizard}
}

type startSessionRequest struct {
	SessionID string `json:"sessionId"`
	CpfCnpj   string `json:"cpfCnpj"`
	Mode      string `json:"mode"`
}

// Start handles POST /api/v1/wizard/sessions
func (h *WizardHandler) Start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody())
		return
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.wizard.Start(c.Request.Context(), req.SessionID, req.CpfCnpj, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// Get handles GET /api/v1/wizard/sessions/:id
func (h *WizardHandler) Get(c *gin.Context) {
	h.sessionCall(c, h.wizard.Get)
}

// Continue handles POST /api/v1/wizard/sessions/:id/continue
func (h *WizardHandler) Continue(c *gin.Context) {
	h.sessionCall(c, h.wizard.Continue)
}

// Back handles POST /api/v1/wizard/sessions/:id/back
func (h *WizardHandler) Back(c *gin.Context) {
	h.sessionCall(c, h.wizard.Back)
}

func (h *WizardHandler) sessionCall(c *gin.Context, fn func(context.Context, string) (*entities.WizardSession, error)) {
	session, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// SaveStep handles PUT /api/v1/wizard/sessions/:id/steps/:step
func (h *WizardHandler) SaveStep(c *gin.Context) {
	step, ok := dataStep(c)
	if !ok {
		return
	}
	payload, err := c.GetRawData()
	if err != nil || !json.Valid(payload) {
		response.Error(c, invalidBody())
		return
	}

	session, err := h.wizard.SaveStep(c.Request.Context(), c.Param("id"), step, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// StepView handles GET /api/v1/wizard/sessions/:id/steps/:step
func (h *WizardHandler) StepView(c *gin.Context) {
	step, ok := dataStep(c)
	if !ok {
		return
	}

	view, err := h.wizard.StepView(c.Request.Context(), c.Param("id"), step)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Submit handles POST /api/v1/wizard/sessions/:id/submit
func (h *WizardHandler) Submit(c *gin.Context) {
	session, err := h.wizard.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if session.Result == nil {
		response.Error(c, domainerrors.ErrStepIncomplete)
		return
	}
	response.OK(c, http.StatusOK, submissionFields(session.Result))
}

// Reset handles DELETE /api/v1/wizard/sessions/:id
func (h *WizardHandler) Reset(c *gin.Context) {
	if err := h.wizard.Reset(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// dataStep accepts only the steps that carry a draft
func dataStep(c *gin.Context) (entities.WizardStep, bool) {
	step, ok := entities.ParseWizardStep(c.Param("step"))
	if ok {
		_, ok = step.Slot()
	}
	if !ok {
		response.Error(c, domainerrors.NewValidationError("step", "etapa inválida"))
		return "", false
	}
	return step, true
}
