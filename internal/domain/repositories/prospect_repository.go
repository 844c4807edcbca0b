package repositories

import (
	"context"

	"vendor-onboarding.backend/internal/domain/entities"
)

// ProspectRepository is the read-only prospect spreadsheet
type ProspectRepository interface {
	// FindByDocument returns nil, nil when no row matches.
	FindByDocument(ctx context.Context, document string) (*entities.SheetRow, error)
	// Refresh reloads the sheet into the cache and returns the row count.
	Refresh(ctx context.Context) (int, error)
}
