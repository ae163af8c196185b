package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopnet/internal/dbx"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/repomanager"
)

// notify stores a notification for userID using db, which is normally the
// transaction of the action being reported.
func notify(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, userID string,
	typ models.NotificationType, title, message string) error {
	_, err := m.Notifications(db).Create(ctx, &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}
