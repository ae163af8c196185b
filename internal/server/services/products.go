package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/dbx"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopnet/internal/validation"
)

// ProductService manages listings. Ownership of an existing product is
// checked by IdentityService.AuthorizeProductOwner before Update and Delete.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

func validateProduct(req api.ProductRequest) error {
	if err := validation.Struct(req).First(); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return &validation.FieldError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}

// Create lists a new product. Only sellers may create products.
func (s *ProductService) Create(ctx context.Context, identity *Identity, req api.ProductRequest) (*models.Product, error) {
	if identity.AccountType != api.AccountTypeSeller {
		return nil, common.ErrForbidden
	}
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	var created *models.Product
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Products(tx).Create(ctx, models.ProductFromRequest(identity.UserID, req))
		if err != nil {
			return fmt.Errorf("error creating product: %w", err)
		}
		return notify(ctx, s.repomanager, tx, identity.UserID, models.NotificationProduct,
			"Product listed", fmt.Sprintf("%q is now live.", created.Title))
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns every product, or only the caller's when sellerView is set.
// The seller view is reserved for sellers.
func (s *ProductService) List(ctx context.Context, identity *Identity, sellerView bool) ([]*models.Product, error) {
	repo := s.repomanager.Products(s.db)
	if !sellerView {
		return repo.List(ctx)
	}
	if identity.AccountType != api.AccountTypeSeller {
		return nil, common.ErrForbidden
	}
	return repo.ListBySeller(ctx, identity.UserID)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByID(ctx, id)
}

// Update replaces the editable fields of an owned product.
func (s *ProductService) Update(ctx context.Context, owned *models.Product, req api.ProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	p := models.ProductFromRequest(owned.SellerID, req)
	p.ID = owned.ID
	return s.repomanager.Products(s.db).Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, owned *models.Product) error {
	return s.repomanager.Products(s.db).Delete(ctx, owned.ID)
}
