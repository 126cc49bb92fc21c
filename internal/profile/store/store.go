package store

import (
	"context"

	"github.com/alirk24/sejam-porfiling/internal/profile/models"
	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// ErrNotFound keeps storage-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "profile not found")

// Store persists canonical profiles and their shareholder sets.
//
// Save upserts the profile keyed by its unique identifier. When shareholders
// is non-nil (including an empty slice) the stored shareholder set for the
// profile is replaced wholesale within the same atomic unit; a nil slice
// leaves the existing set untouched. Implementations must guarantee readers
// never observe a partially-replaced set.
type Store interface {
	Find(ctx context.Context, uniqueIdentifier string) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile, shareholders []models.Shareholder) error
	Shareholders(ctx context.Context, profileID string) ([]models.Shareholder, error)
	Delete(ctx context.Context, uniqueIdentifier string) error
}
