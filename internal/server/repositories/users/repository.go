// Package users declares the user repository and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills ID and timestamps. A second user with
	// the same email (case-insensitive) yields common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateAccountType(ctx context.Context, id string, accountType api.AccountType) error
	// ClaimAccountType sets the role only while it is still unset and returns
	// common.ErrAccountTypeLocked when another writer got there first.
	ClaimAccountType(ctx context.Context, id string, accountType api.AccountType) error
	UpdateName(ctx context.Context, id string, name string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
