package models

import (
	"time"

	"github.com/dmitrijs2005/shopnet/internal/api"
)

type NotificationType string

const (
	NotificationSystem  NotificationType = "SYSTEM"
	NotificationOrder   NotificationType = "ORDER"
	NotificationProduct NotificationType = "PRODUCT"
	NotificationAccount NotificationType = "ACCOUNT"
)

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      NotificationType
	Read      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Notification) ToAPI() api.Notification {
	return api.Notification{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
