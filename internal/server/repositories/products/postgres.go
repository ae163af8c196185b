package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/dbx"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// productColumns are read from products p joined with the seller u.
const productColumns = `p.id, p.seller_id, p.title, p.description, p.price, p.category, p.condition, p.location,
		p.brand, p.model, p.color, p.quantity, p.features, p.specifications, p.negotiable, p.shipping, p.warranty,
		p.warranty_duration, p.images, p.created_at, p.updated_at, u.name`

const fromProducts = ` FROM products p JOIN users u ON u.id = p.seller_id`

// withSeller wraps a data-modifying statement that ends in RETURNING * so
// the written row comes back with its seller.
func withSeller(stmt string) string {
	return `WITH p AS (` + stmt + `) SELECT ` + productColumns + ` FROM p JOIN users u ON u.id = p.seller_id`
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.Product, error) {
	p := &models.Product{}
	var features, specs, images []byte

	err := s.Scan(&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Condition,
		&p.Location, &p.Brand, &p.Model, &p.Color, &p.Quantity, &features, &specs, &p.Negotiable,
		&p.Shipping, &p.Warranty, &p.WarrantyDuration, &images, &p.CreatedAt, &p.UpdatedAt, &p.SellerName)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(features, &p.Features); err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}
	if err := json.Unmarshal(specs, &p.Specifications); err != nil {
		return nil, fmt.Errorf("specifications: %w", err)
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("images: %w", err)
	}
	return p, nil
}

// jsonArgs encodes the JSONB columns of p.
func jsonArgs(p *models.Product) (features, specs, images []byte, err error) {
	if features, err = json.Marshal(nonNilSlice(p.Features)); err != nil {
		return
	}
	specMap := p.Specifications
	if specMap == nil {
		specMap = map[string]string{}
	}
	if specs, err = json.Marshal(specMap); err != nil {
		return
	}
	images, err = json.Marshal(nonNilSlice(p.Images))
	return
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	features, specs, images, err := jsonArgs(p)
	if err != nil {
		return nil, fmt.Errorf("encode error: %w", err)
	}

	query := withSeller(
		`INSERT INTO products (seller_id, title, description, price, category, condition, location, brand, model,
		   color, quantity, features, specifications, negotiable, shipping, warranty, warranty_duration, images)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING *`)

	row := r.db.QueryRowContext(ctx, query,
		p.SellerID, p.Title, p.Description, p.Price, p.Category, p.Condition, p.Location, p.Brand, p.Model,
		p.Color, p.Quantity, features, specs, p.Negotiable, p.Shipping, p.Warranty, p.WarrantyDuration, images)

	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if !dbx.IsUUID(id) {
		return nil, common.ErrorNotFound
	}
	query := `SELECT ` + productColumns + fromProducts + ` WHERE p.id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+fromProducts+` ORDER BY p.created_at DESC`)
}

func (r *PostgresRepository) ListBySeller(ctx context.Context, sellerID string) ([]*models.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+fromProducts+` WHERE p.seller_id = $1 ORDER BY p.created_at DESC`, sellerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if !dbx.IsUUID(p.ID) {
		return nil, common.ErrorNotFound
	}
	features, specs, images, err := jsonArgs(p)
	if err != nil {
		return nil, fmt.Errorf("encode error: %w", err)
	}

	query := withSeller(
		`UPDATE products SET title = $2, description = $3, price = $4, category = $5, condition = $6,
		   location = $7, brand = $8, model = $9, color = $10, quantity = $11, features = $12,
		   specifications = $13, negotiable = $14, shipping = $15, warranty = $16, warranty_duration = $17,
		   images = $18, updated_at = now()
		 WHERE id = $1
		 RETURNING *`)

	row := r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.Category, p.Condition, p.Location, p.Brand, p.Model,
		p.Color, p.Quantity, features, specs, p.Negotiable, p.Shipping, p.Warranty, p.WarrantyDuration, images)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !dbx.IsUUID(id) {
		return common.ErrorNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
