// Package products stores marketplace listings.
package products

import (
	"context"

	"github.com/dmitrijs2005/shopnet/internal/server/models"
)

// Products come back with SellerName filled from the users table. A
// malformed id is reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// List returns every product, newest first.
	List(ctx context.Context) ([]*models.Product, error)
	// ListBySeller returns the seller's products, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
