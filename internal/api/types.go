package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	Phone               string `json:"phone,omitempty"`
	Address             string `json:"address,omitempty"`
	BusinessName        string `json:"businessName,omitempty"`
	BusinessDescription string `json:"businessDescription,omitempty"`
	Preferences         string `json:"preferences,omitempty"`
	ProfileImage        string `json:"profileImage,omitempty"`
	EmailNotifications  bool   `json:"emailNotifications"`
	OrderUpdates        bool   `json:"orderUpdates"`
}

// User is the user snapshot returned by every identity endpoint. Profile is
// nil until the first profile write.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Profile     *Profile    `json:"profile"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	User User `json:"user"`
}

// ProfileFields are the role-specific onboarding fields. Sellers fill the
// business fields, buyers may fill Preferences.
type ProfileFields struct {
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	BusinessName        string `json:"businessName,omitempty"`
	BusinessDescription string `json:"businessDescription,omitempty"`
	Preferences         string `json:"preferences,omitempty"`
}

type AccountTypeRequest struct {
	AccountType AccountType   `json:"accountType"`
	Profile     ProfileFields `json:"profile"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type NotificationSettingsRequest struct {
	EmailNotifications bool `json:"emailNotifications"`
	OrderUpdates       bool `json:"orderUpdates"`
}

type ProductRequest struct {
	Title            string            `json:"title" validate:"required"`
	Description      string            `json:"description" validate:"required"`
	Price            decimal.Decimal   `json:"price"`
	Category         string            `json:"category"`
	Condition        string            `json:"condition" validate:"required"`
	Location         string            `json:"location" validate:"required"`
	Brand            string            `json:"brand"`
	Model            string            `json:"model"`
	Color            string            `json:"color"`
	Quantity         int               `json:"quantity" validate:"gte=0"`
	Features         []string          `json:"features"`
	Specifications   map[string]string `json:"specifications"`
	Negotiable       bool              `json:"negotiable"`
	Shipping         bool              `json:"shipping"`
	Warranty         bool              `json:"warranty"`
	WarrantyDuration string            `json:"warrantyDuration"`
	Images           []string          `json:"images"`
}

// Seller is the public summary of a product's owner.
type Seller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID               string            `json:"id"`
	SellerID         string            `json:"sellerId"`
	Seller           *Seller           `json:"seller,omitempty"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Price            decimal.Decimal   `json:"price"`
	Category         string            `json:"category"`
	Condition        string            `json:"condition"`
	Location         string            `json:"location"`
	Brand            string            `json:"brand,omitempty"`
	Model            string            `json:"model,omitempty"`
	Color            string            `json:"color,omitempty"`
	Quantity         int               `json:"quantity"`
	Features         []string          `json:"features"`
	Specifications   map[string]string `json:"specifications"`
	Negotiable       bool              `json:"negotiable"`
	Shipping         bool              `json:"shipping"`
	Warranty         bool              `json:"warranty"`
	WarrantyDuration string            `json:"warrantyDuration,omitempty"`
	Images           []string          `json:"images"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type PresignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	URL       string `json:"url"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
