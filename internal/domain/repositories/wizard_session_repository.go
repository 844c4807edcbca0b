package repositories

import (
	"context"
	"time"

	"vendor-onboarding.backend/internal/domain/entities"
)

// WizardSessionRepository stores wizard sessions
type WizardSessionRepository interface {
	Save(ctx context.Context, session *entities.WizardSession) error
	Get(ctx context.Context, id string) (*entities.WizardSession, error)
	Delete(ctx context.Context, id string) error
	// AcquireSubmitLock returns false when a submission for id is already running.
	AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, id string) error
}
