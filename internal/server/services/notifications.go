package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/repomanager"
)

// NotificationService exposes a user's own notifications. Every method is
// scoped by userID, so another user's notification behaves as missing.
type NotificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNotificationService(db *sql.DB, m repomanager.RepositoryManager) *NotificationService {
	return &NotificationService{db: db, repomanager: m}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.repomanager.Notifications(s.db).ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	return s.repomanager.Notifications(s.db).MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repomanager.Notifications(s.db).MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Notifications(s.db).Delete(ctx, id, userID)
}
