package client

import (
	"context"

	"github.com/dmitrijs2005/shopnet/internal/api"
)

// Client is the ShopNet API as seen by the CLI. Calls made before SetToken
// are anonymous.
type Client interface {
	SetToken(token string)

	Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*api.User, error)
	UpdateAccountType(ctx context.Context, accountType api.AccountType, profile api.ProfileFields) (*api.User, error)

	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	UpdateNotificationSettings(ctx context.Context, req api.NotificationSettingsRequest) (*api.User, error)

	ListProducts(ctx context.Context, sellerView bool) ([]api.Product, error)
	GetProduct(ctx context.Context, id string) (*api.Product, error)
	CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error)
	UpdateProduct(ctx context.Context, id string, req api.ProductRequest) (*api.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListNotifications(ctx context.Context) ([]api.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*api.Notification, error)
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error

	PresignImage(ctx context.Context) (*api.PresignResponse, error)
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
}
