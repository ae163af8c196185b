// Package notifications stores per-user notifications.
package notifications

import (
	"context"

	"github.com/dmitrijs2005/shopnet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	// MarkRead flags one notification of userID as read. A notification that
	// does not exist or belongs to someone else yields common.ErrorNotFound.
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
	// MarkAllRead returns the number of notifications changed.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
}
