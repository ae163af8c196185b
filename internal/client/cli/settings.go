package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/validation"
)

const settingsPath = "/settings"

// Settings handles "settings [profile|password|notify|photo <file>]".
func (a *App) Settings(ctx context.Context, args []string) error {
	if !a.enter(settingsPath) {
		return nil
	}
	if len(args) == 0 {
		a.println("Usage: settings profile | password | notify | photo <file>")
		return nil
	}

	switch args[0] {
	case "profile":
		return a.editProfile(ctx)
	case "password":
		return a.changePassword(ctx)
	case "notify":
		return a.editNotifications(ctx)
	case "photo":
		if len(args) != 2 {
			a.println("Usage: settings photo <file>")
			return nil
		}
		return a.uploadPhoto(ctx, args[1])
	}

	a.println("Unknown settings command:", args[0])
	return nil
}

// currentProfile is the update request that changes nothing.
func (a *App) currentProfile() api.UpdateProfileRequest {
	var req api.UpdateProfileRequest
	if u := a.store.Snapshot().User; u != nil {
		req.Name = u.Name
		if p := u.Profile; p != nil {
			req.Phone = p.Phone
			req.Address = p.Address
			req.ProfileImage = p.ProfileImage
		}
	}
	return req
}

func (a *App) promptKeep(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func (a *App) saveProfile(ctx context.Context, req api.UpdateProfileRequest) error {
	return a.call(ctx, func() error {
		u, err := a.api.UpdateProfile(ctx, req)
		if err != nil {
			return err
		}
		a.store.RefreshUser(u)
		return nil
	})
}

func (a *App) editProfile(ctx context.Context) error {
	req := a.currentProfile()
	var err error

	if req.Name, err = a.promptKeep("Name", req.Name); err != nil {
		return err
	}
	if req.Phone, err = a.promptKeep("Phone number", req.Phone); err != nil {
		return err
	}
	if req.Address, err = a.promptKeep("Address", req.Address); err != nil {
		return err
	}

	if err := a.saveProfile(ctx, req); err != nil {
		return err
	}
	a.println("Profile updated")
	return nil
}

func (a *App) changePassword(ctx context.Context) error {
	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := validation.Password("newPassword", string(next)).First(); err != nil {
		return err
	}

	err = a.call(ctx, func() error {
		return a.api.ChangePassword(ctx, string(current), string(next))
	})
	if err != nil {
		return err
	}
	a.println("Password updated successfully")
	return nil
}

func (a *App) editNotifications(ctx context.Context) error {
	var req api.NotificationSettingsRequest
	if u := a.store.Snapshot().User; u != nil && u.Profile != nil {
		req.EmailNotifications = u.Profile.EmailNotifications
		req.OrderUpdates = u.Profile.OrderUpdates
	}

	var err error
	if req.EmailNotifications, err = GetYesNo(a.reader, "Email notifications?", req.EmailNotifications, a.out); err != nil {
		return err
	}
	if req.OrderUpdates, err = GetYesNo(a.reader, "Order updates?", req.OrderUpdates, a.out); err != nil {
		return err
	}

	err = a.call(ctx, func() error {
		u, err := a.api.UpdateNotificationSettings(ctx, req)
		if err != nil {
			return err
		}
		a.store.RefreshUser(u)
		return nil
	})
	if err != nil {
		return err
	}
	a.println("Notification settings updated")
	return nil
}

// uploadPhoto stores the file with the image host and makes it the profile
// picture.
func (a *App) uploadPhoto(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var url string
	err = a.call(ctx, func() (err error) {
		url, err = a.api.UploadImage(ctx, data, http.DetectContentType(data))
		return err
	})
	if err != nil {
		return err
	}

	req := a.currentProfile()
	req.ProfileImage = url
	if err := a.saveProfile(ctx, req); err != nil {
		return err
	}
	a.println("Profile photo updated:", url)
	return nil
}
