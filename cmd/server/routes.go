package main

import (
	"github.com/gin-gonic/gin"

	"vendor-onboarding.backend/internal/interfaces/http/handlers"
	"vendor-onboarding.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	vendorHandler     *handlers.VendorHandler
	prefillHandler    *handlers.PrefillHandler
	onboardingHandler *handlers.OnboardingHandler
	wizardHandler     *handlers.WizardHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		v1.POST("/vendor", d.vendorHandler.Lookup)

		// Prefill reads
		v1.GET("/merchant", d.prefillHandler.GetMerchant)
		v1.GET("/equipment-profile", d.prefillHandler.GetEquipmentProfile)
		v1.GET("/menu", d.prefillHandler.GetMenu)
		v1.GET("/banner", d.prefillHandler.GetBanner)
		v1.POST("/banner", d.prefillHandler.SaveBanner)
		v1.GET("/prospects/:document", d.prefillHandler.GetProspect)

		onboarding := v1.Group("/onboarding")
		{
			onboarding.POST("/submit", middleware.IdempotencyMiddleware(), d.onboardingHandler.Submit)
		}

		sessions := v1.Group("/wizard/sessions")
		{
			sessions.POST("", d.wizardHandler.Start)
			sessions.GET("/:id", d.wizardHandler.Get)
			sessions.DELETE("/:id", d.wizardHandler.Reset)
			sessions.POST("/:id/continue", d.wizardHandler.Continue)
			sessions.POST("/:id/back", d.wizardHandler.Back)
			sessions.POST("/:id/submit", d.wizardHandler.Submit)
			sessions.PUT("/:id/steps/:step", d.wizardHandler.SaveStep)
			sessions.GET("/:id/steps/:step", d.wizardHandler.StepView)
		}
	}
}
