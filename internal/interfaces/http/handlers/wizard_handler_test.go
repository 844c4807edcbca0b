package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/usecases"
)

type wizardServiceStub struct {
	startFn    func(ctx context.Context, sessionID, doc string, mode entities.OnboardingMode) (*entities.WizardSession, error)
	getFn      func(ctx context.Context, id string) (*entities.WizardSession, error)
	continueFn func(ctx context.Context, id string) (*entities.WizardSession, error)
	saveFn     func(ctx context.Context, id string, step entities.WizardStep, payload json.RawMessage) (*entities.WizardSession, error)
	backFn     func(ctx context.Context, id string) (*entities.WizardSession, error)
	viewFn     func(ctx context.Context, id string, step entities.WizardStep) (*usecases.StepView, error)
	submitFn   func(ctx context.Context, id string) (*entities.WizardSession, error)
	resetFn    func(ctx context.Context, id string) error
}

func (s wizardServiceStub) Start(ctx context.Context, sessionID, doc string, mode entities.OnboardingMode) (*entities.WizardSession, error) {
	return s.startFn(ctx, sessionID, doc, mode)
}

func (s wizardServiceStub) Get(ctx context.Context, id string) (*entities.WizardSession, error) {
	return s.getFn(ctx, id)
}

func (s wizardServiceStub) Continue(ctx context.Context, id string) (*entities.WizardSession, error) {
	return s.continueFn(ctx, id)
}

func (s wizardServiceStub) SaveStep(ctx context.Context, id string, step entities.WizardStep, payload json.RawMessage) (*entities.WizardSession, error) {
	return s.saveFn(ctx, id, step, payload)
}

func (s wizardServiceStub) Back(ctx context.Context, id string) (*entities.WizardSession, error) {
	return s.backFn(ctx, id)
}

func (s wizardServiceStub) StepView(ctx context.Context, id string, step entities.WizardStep) (*usecases.StepView, error) {
	return s.viewFn(ctx, id, step)
}

func (s wizardServiceStub) Submit(ctx context.Context, id string) (*entities.WizardSession, error) {
	return s.submitFn(ctx, id)
}

func (s wizardServiceStub) Reset(ctx context.Context, id string) error {
	return s.resetFn(ctx, id)
}

func wizardRoutes(stub wizardServiceStub) *gin.Engine {
	h := NewWizardHandler(stub)
	r := newTestRouter()
	g := r.Group("/sessions")
	g.POST("", h.Start)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Reset)
	g.POST("/:id/continue", h.Continue)
	g.POST("/:id/back", h.Back)
	g.POST("/:id/submit", h.Submit)
	g.PUT("/:id/steps/:step", h.SaveStep)
	g.GET("/:id/steps/:step", h.StepView)
	return r
}

func sessionAt(id string, step entities.WizardStep) *entities.WizardSession {
	s := entities.NewWizardSession(id, time.Now())
	s.VendorID = "12345678901"
	s.Step = step
	return s
}

func TestWizardHandler_Start(t *testing.T) {
	t.Run("passes session, document and mode", func(t *testing.T) {
		var gotID, gotDoc string
		var gotMode entities.OnboardingMode
		router := wizardRoutes(wizardServiceStub{
			startFn: func(_ context.Context, sessionID, doc string, mode entities.OnboardingMode) (*entities.WizardSession, error) {
				gotID, gotDoc, gotMode = sessionID, doc, mode
				s := sessionAt("s-1", entities.StepApproved)
				s.CanContinue = true
				return s, nil
			},
		})

		w := doJSON(router, http.MethodPost, "/sessions", `{"sessionId":"s-1","cpfCnpj":"123.456.789-01","mode":"edit"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "s-1", gotID)
		assert.Equal(t, "123.456.789-01", gotDoc)
		assert.Equal(t, entities.ModeEdit, gotMode)

		body := decodeBody(t, w)
		assert.Equal(t, "approved", body["step"])
		assert.Equal(t, true, body["canContinue"])
	})

	t.Run("invalid mode", func(t *testing.T) {
		router := wizardRoutes(wizardServiceStub{})
		w := doJSON(router, http.MethodPost, "/sessions", `{"cpfCnpj":"12345678901","mode":"x"}`)
		requireErrorCode(t, w, http.StatusBadRequest, domainerrors.CodeInvalidInput)
	})

	t.Run("conflict", func(t *testing.T) {
		router := wizardRoutes(wizardServiceStub{
			startFn: func(context.Context, string, string, entities.OnboardingMode) (*entities.WizardSession, error) {
				return nil, domainerrors.ErrSubmissionExists
			},
		})
		w := doJSON(router, http.MethodPost, "/sessions", `{"cpfCnpj":"12345678901","mode":"create"}`)
		requireErrorCode(t, w, http.StatusConflict, domainerrors.CodeSubmissionExists)
	})
}

func TestWizardHandler_SessionTransitions(t *testing.T) {
	router := wizardRoutes(wizardServiceStub{
		getFn: func(_ context.Context, id string) (*entities.WizardSession, error) {
			if id == "missing" {
				return nil, domainerrors.ErrSessionNotFound
			}
			return sessionAt(id, entities.StepBank), nil
		},
		continueFn: func(_ context.Context, id string) (*entities.WizardSession, error) {
			return nil, domainerrors.ErrVendorNotConfirmed
		},
		backFn: func(_ context.Context, id string) (*entities.WizardSession, error) {
			return sessionAt(id, entities.StepPersonal), nil
		},
	})

	w := doJSON(router, http.MethodGet, "/sessions/s-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bank", decodeBody(t, w)["step"])

	w = doJSON(router, http.MethodGet, "/sessions/missing", "")
	requireErrorCode(t, w, http.StatusNotFound, domainerrors.CodeNotFound)

	w = doJSON(router, http.MethodPost, "/sessions/s-1/continue", "")
	requireErrorCode(t, w, http.StatusForbidden, domainerrors.CodeForbidden)

	w = doJSON(router, http.MethodPost, "/sessions/s-1/back", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "personal", decodeBody(t, w)["step"])
}

func TestWizardHandler_SaveStep(t *testing.T) {
	t.Run("forwards raw payload", func(t *testing.T) {
		var gotStep entities.WizardStep
		var gotPayload json.RawMessage
		router := wizardRoutes(wizardServiceStub{
			saveFn: func(_ context.Context, id string, step entities.WizardStep, payload json.RawMessage) (*entities.WizardSession, error) {
				gotStep, gotPayload = step, payload
				return sessionAt(id, entities.StepMenu), nil
			},
		})

		w := doJSON(router, http.MethodPut, "/sessions/s-1/steps/equipment", `{"items":[{"name":"Chapa","qty":1}],"outlets220":1}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, entities.StepEquipment, gotStep)
		assert.JSONEq(t, `{"items":[{"name":"Chapa","qty":1}],"outlets220":1}`, string(gotPayload))
	})

	t.Run("non data step", func(t *testing.T) {
		router := wizardRoutes(wizardServiceStub{})
		for _, step := range []string{"document", "approved", "done", "payment"} {
			w := doJSON(router, http.MethodPut, "/sessions/s-1/steps/"+step, `{}`)
			requireErrorCode(t, w, http.StatusBadRequest, domainerrors.CodeInvalidInput)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		router := wizardRoutes(wizardServiceStub{})
		w := doJSON(router, http.MethodPut, "/sessions/s-1/steps/personal", `{"email":`)
		requireErrorCode(t, w, http.StatusBadRequest, domainerrors.CodeInvalidInput)
	})

	t.Run("validation and ordering errors", func(t *testing.T) {
		router := wizardRoutes(wizardServiceStub{
			saveFn: func(_ context.Context, _ string, step entities.WizardStep, _ json.RawMessage) (*entities.WizardSession, error) {
				if step == entities.StepMenu {
					return nil, domainerrors.ErrStepOutOfOrder
				}
				return nil, domainerrors.NewValidationError("email", "email inválido")
			},
		})

		w := doJSON(router, http.MethodPut, "/sessions/s-1/steps/personal", `{"email":"x"}`)
		requireErrorCode(t, w, http.StatusBadRequest, domainerrors.CodeInvalidInput)

		w = doJSON(router, http.MethodPut, "/sessions/s-1/steps/menu", `{}`)
		requireErrorCode(t, w, http.StatusBadRequest, domainerrors.CodeBadRequest)
	})
}

func TestWizardHandler_StepView(t *testing.T) {
	router := wizardRoutes(wizardServiceStub{
		viewFn: func(_ context.Context, _ string, step entities.WizardStep) (*usecases.StepView, error) {
			return &usecases.StepView{Step: step, Source: usecases.SourceDefault, Data: entities.DefaultBannerDraft()}, nil
		},
	})

	w := doJSON(router, http.MethodGet, "/sessions/s-1/steps/banner", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "banner", body["step"])
	assert.Equal(t, "default", body["source"])
	assert.Equal(t, "classic", body["data"].(map[string]interface{})["theme"])
}

func TestWizardHandler_Submit(t *testing.T) {
	merchantID := uuid.New()

	t.Run("returns result", func(t *testing.T) {
		router := wizardRoutes(wizardServiceStub{
			submitFn: func(_ context.Context, id string) (*entities.WizardSession, error) {
				s := sessionAt(id, entities.StepDone)
				s.Result = &entities.SubmissionResult{Mode: entities.ModeCreate, MerchantID: merchantID}
				return s, nil
			},
		})

		w := doJSON(router, http.MethodPost, "/sessions/s-1/submit", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, merchantID.String(), body["merchantId"])
	})

	t.Run("in flight", func(t *testing.T) {
		router := wizardRoutes(wizardServiceStub{
			submitFn: func(context.Context, string) (*entities.WizardSession, error) {
				return nil, domainerrors.ErrSubmissionInFlight
			},
		})
		w := doJSON(router, http.MethodPost, "/sessions/s-1/submit", "")
		requireErrorCode(t, w, http.StatusConflict, domainerrors.CodeInFlight)
	})
}

func TestWizardHandler_Reset(t *testing.T) {
	var reset string
	router := wizardRoutes(wizardServiceStub{
		resetFn: func(_ context.Context, id string) error {
			reset = id
			return nil
		},
	})

	w := doJSON(router, http.MethodDelete, "/sessions/s-9", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "s-9", reset)
}
