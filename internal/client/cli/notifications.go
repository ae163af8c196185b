package cli

import (
	"context"
	"fmt"
)

const notificationsPath = "/notifications"

// Notifications handles "notifications [read <id>|read-all|delete <id>]".
func (a *App) Notifications(ctx context.Context, args []string) error {
	if !a.enter(notificationsPath) {
		return nil
	}

	if len(args) == 0 {
		return a.call(ctx, func() error {
			list, err := a.api.ListNotifications(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				a.println("No notifications")
			}
			for _, n := range list {
				mark := " "
				if !n.Read {
					mark = "*"
				}
				a.println(fmt.Sprintf("%s %s [%s] %s: %s", mark, n.ID, n.Type, n.Title, n.Message))
			}
			return nil
		})
	}

	switch args[0] {
	case "read":
		if len(args) != 2 {
			a.println("Usage: notifications read <id>")
			return nil
		}
		return a.call(ctx, func() error {
			if _, err := a.api.MarkNotificationRead(ctx, args[1]); err != nil {
				return err
			}
			a.println("Marked as read")
			return nil
		})
	case "read-all":
		return a.call(ctx, func() error {
			if err := a.api.MarkAllNotificationsRead(ctx); err != nil {
				return err
			}
			a.println("All notifications marked as read")
			return nil
		})
	case "delete":
		if len(args) != 2 {
			a.println("Usage: notifications delete <id>")
			return nil
		}
		return a.call(ctx, func() error {
			if err := a.api.DeleteNotification(ctx, args[1]); err != nil {
				return err
			}
			a.println("Notification deleted")
			return nil
		})
	}

	a.println("Unknown notifications command:", args[0])
	return nil
}
