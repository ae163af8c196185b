// Package refreshtokens stores the refresh tokens handed out next to access
// tokens. Only a SHA-256 digest of each token is persisted.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/shopnet/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, valid for validity from now.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete spends a token. It returns common.ErrorNotFound when no row was
	// removed, so each token can be exchanged at most once.
	Delete(ctx context.Context, token string) error

	// DeleteByUser revokes every refresh token of userID.
	DeleteByUser(ctx context.Context, userID string) error
}
