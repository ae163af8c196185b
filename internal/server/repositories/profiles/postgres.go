package profiles

import (
	"context"
	"database/sql"
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

const profileColumns = `id, user_id, phone, address, business_name, business_description, preferences,
		profile_image, email_notifications, order_updates, created_at, updated_at`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.UserID, &p.Phone, &p.Address, &p.BusinessName, &p.BusinessDescription,
		&p.Preferences, &p.ProfileImage, &p.EmailNotifications, &p.OrderUpdates, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) UpsertOnboarding(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (user_id, phone, address, business_name, business_description, preferences)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   phone = COALESCE(NULLIF(EXCLUDED.phone, ''), profiles.phone),
		   address = COALESCE(NULLIF(EXCLUDED.address, ''), profiles.address),
		   business_name = COALESCE(NULLIF(EXCLUDED.business_name, ''), profiles.business_name),
		   business_description = COALESCE(NULLIF(EXCLUDED.business_description, ''), profiles.business_description),
		   preferences = COALESCE(NULLIF(EXCLUDED.preferences, ''), profiles.preferences),
		   updated_at = now()
		 RETURNING ` + profileColumns

	return scanProfile(r.db.QueryRowContext(ctx, query,
		p.UserID, p.Phone, p.Address, p.BusinessName, p.BusinessDescription, p.Preferences))
}

func (r *PostgresRepository) UpsertContact(ctx context.Context, userID, phone, address, profileImage string) error {
	query :=
		`INSERT INTO profiles (user_id, phone, address, profile_image)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		   phone = EXCLUDED.phone,
		   address = EXCLUDED.address,
		   profile_image = EXCLUDED.profile_image,
		   updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, userID, phone, address, profileImage); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpsertNotifications(ctx context.Context, userID string, email, orders bool) error {
	query :=
		`INSERT INTO profiles (user_id, email_notifications, order_updates)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET
		   email_notifications = EXCLUDED.email_notifications,
		   order_updates = EXCLUDED.order_updates,
		   updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, userID, email, orders); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
