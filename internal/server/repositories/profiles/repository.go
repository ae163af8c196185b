// Package profiles stores the one-to-one user profile.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/shopnet/internal/server/models"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// UpsertOnboarding creates the profile or merges the onboarding fields
	// into the existing one. Empty fields keep the stored value.
	UpsertOnboarding(ctx context.Context, p *models.Profile) (*models.Profile, error)

	// UpsertContact creates the profile or overwrites phone, address and
	// profile image.
	UpsertContact(ctx context.Context, userID, phone, address, profileImage string) error

	// UpsertNotifications creates the profile or overwrites the notification
	// preference flags.
	UpsertNotifications(ctx context.Context, userID string, email, orders bool) error
}
