package models

import (
	"time"

	"github.com/dmitrijs2005/shopnet/internal/api"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	AccountType  api.AccountType
	Profile      *Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the one-to-one extension of User written at onboarding or on
// the first settings edit.
type Profile struct {
	ID                  string
	UserID              string
	Phone               string
	Address             string
	BusinessName        string
	BusinessDescription string
	Preferences         string
	ProfileImage        string
	EmailNotifications  bool
	OrderUpdates        bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ToAPI converts the stored user to its wire form. The password hash never
// leaves the server.
func (u *User) ToAPI() api.User {
	out := api.User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AccountType: u.AccountType,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Profile != nil {
		out.Profile = &api.Profile{
			Phone:               u.Profile.Phone,
			Address:             u.Profile.Address,
			BusinessName:        u.Profile.BusinessName,
			BusinessDescription: u.Profile.BusinessDescription,
			Preferences:         u.Profile.Preferences,
			ProfileImage:        u.Profile.ProfileImage,
			EmailNotifications:  u.Profile.EmailNotifications,
			OrderUpdates:        u.Profile.OrderUpdates,
		}
	}
	return out
}
