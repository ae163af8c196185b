package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopnet/internal/dbx"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/products"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a *sql.DB or *sql.Tx so
// that services can run several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Products(db dbx.DBTX) products.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
