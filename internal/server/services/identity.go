// Package services contains server-side business logic. IdentityService owns
// registration, login, onboarding and every authorization decision made on
// behalf of the REST layer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/cryptox"
	"github.com/dmitrijs2005/shopnet/internal/dbx"
	"github.com/dmitrijs2005/shopnet/internal/server/auth"
	"github.com/dmitrijs2005/shopnet/internal/server/config"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopnet/internal/validation"
)

// TokenPair bundles an access token and a server-stored refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User         *models.User
	Token        string
	RefreshToken string
}

// Identity is an authenticated caller. AccountType is read from storage on
// every request, so a token minted before onboarding still sees the new role.
type Identity struct {
	UserID      string
	AccountType api.AccountType
}

type IdentityService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       *cryptox.PasswordHasher
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	allowAccountTypeChange       bool
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:                           db,
		repomanager:                  m,
		hasher:                       cryptox.NewPasswordHasher(cfg.BcryptCost),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		allowAccountTypeChange:       cfg.AllowsAccountTypeChange(),
	}
}

// Register creates a user with an unset account type and signs them in.
func (s *IdentityService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if err := validation.Registration(email, password, name).First(); err != nil {
		return nil, err
	}
	email = validation.NormalizeEmail(email)

	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrDuplicateEmail
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			Name:         strings.TrimSpace(name),
			AccountType:  api.AccountTypeUnset,
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		if err := notify(ctx, s.repomanager, tx, user.ID, models.NotificationAccount,
			"Welcome to ShopNet", "Choose an account type to start buying or selling."); err != nil {
			return err
		}

		pair, err := s.generateTokenPair(ctx, user.ID, tx)
		if err != nil {
			return err
		}
		result = &AuthResult{User: user, Token: pair.AccessToken, RefreshToken: pair.RefreshToken}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Login checks the credentials. An unknown email and a wrong password are
// indistinguishable to the caller, including in how long they take.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	var hash string
	if user != nil {
		hash = user.PasswordHash
	}
	ok, err := s.hasher.Compare(hash, password)
	if err != nil {
		return nil, fmt.Errorf("error comparing password: %w", err)
	}
	if !ok || user == nil {
		return nil, common.ErrInvalidCredentials
	}

	if err := s.loadProfile(ctx, s.db, user); err != nil {
		return nil, err
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// UpdateAccountType finishes onboarding: the profile and the new role are
// written together or not at all.
func (s *IdentityService) UpdateAccountType(ctx context.Context, userID string, accountType api.AccountType, fields api.ProfileFields) (*models.User, error) {
	if !accountType.Settable() {
		return nil, common.ErrInvalidAccountType
	}
	if err := validation.AccountSetup(accountType, fields).First(); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user.AccountType.Onboarded() && !s.allowAccountTypeChange {
		return nil, common.ErrAccountTypeLocked
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		profile, err := s.repomanager.Profiles(tx).UpsertOnboarding(ctx, &models.Profile{
			UserID:              userID,
			Phone:               strings.TrimSpace(fields.Phone),
			Address:             strings.TrimSpace(fields.Address),
			BusinessName:        strings.TrimSpace(fields.BusinessName),
			BusinessDescription: strings.TrimSpace(fields.BusinessDescription),
			Preferences:         strings.TrimSpace(fields.Preferences),
		})
		if err != nil {
			return fmt.Errorf("error saving profile: %w", err)
		}

		if err := s.saveAccountType(ctx, tx, userID, accountType); err != nil {
			return err
		}

		if err := notify(ctx, s.repomanager, tx, userID, models.NotificationAccount,
			"Account set up", fmt.Sprintf("You are now registered as a %s.", accountType)); err != nil {
			return err
		}

		user.Profile = profile
		return nil
	})
	if errors.Is(err, common.ErrAccountTypeLocked) {
		return nil, common.ErrAccountTypeLocked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransaction, err)
	}

	user.AccountType = accountType
	return user, nil
}

// saveAccountType writes the role inside tx. Unless switching is allowed the
// write only lands on a user that is still unset, so of two concurrent
// requests exactly one wins.
func (s *IdentityService) saveAccountType(ctx context.Context, tx dbx.DBTX, userID string, accountType api.AccountType) error {
	repo := s.repomanager.Users(tx)
	if !s.allowAccountTypeChange {
		if err := repo.ClaimAccountType(ctx, userID, accountType); err != nil {
			if errors.Is(err, common.ErrAccountTypeLocked) {
				return err
			}
			return fmt.Errorf("error saving account type: %w", err)
		}
		return nil
	}
	if err := repo.UpdateAccountType(ctx, userID, accountType); err != nil {
		return fmt.Errorf("error saving account type: %w", err)
	}
	return nil
}

// Authorize resolves a bearer token to the caller's identity.
func (s *IdentityService) Authorize(ctx context.Context, token string) (*Identity, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return &Identity{UserID: user.ID, AccountType: user.AccountType}, nil
}

// AuthorizeProductOwner loads the product and checks that the caller sold it.
func (s *IdentityService) AuthorizeProductOwner(ctx context.Context, identity *Identity, productID string) (*models.Product, error) {
	product, err := s.repomanager.Products(s.db).GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("error loading product: %w", err)
	}
	if product.SellerID != identity.UserID {
		return nil, common.ErrForbidden
	}
	return product, nil
}

// Me returns the caller with their profile, if any.
func (s *IdentityService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.getUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if err := s.loadProfile(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the display name and contact details. An empty name
// keeps the current one.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID string, req api.UpdateProfileRequest) (*models.User, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if name := strings.TrimSpace(req.Name); name != "" {
			if err := s.repomanager.Users(tx).UpdateName(ctx, userID, name); err != nil {
				return fmt.Errorf("error updating name: %w", err)
			}
		}
		if err := s.repomanager.Profiles(tx).UpsertContact(ctx, userID,
			strings.TrimSpace(req.Phone), strings.TrimSpace(req.Address), req.ProfileImage); err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}

		var err error
		if user, err = s.getUser(ctx, tx, userID); err != nil {
			return err
		}
		return s.loadProfile(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one and
// revokes every refresh token of the user.
func (s *IdentityService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := validation.Password("newPassword", newPassword).First(); err != nil {
		return err
	}

	user, err := s.getUser(ctx, s.db, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Compare(user.PasswordHash, currentPassword)
	if err != nil {
		return fmt.Errorf("error comparing password: %w", err)
	}
	if !ok {
		return &validation.FieldError{Field: "currentPassword", Message: "Current password is incorrect"}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, userID, hash); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if err := s.repomanager.RefreshTokens(tx).DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("error revoking refresh tokens: %w", err)
		}
		return nil
	})
}

func (s *IdentityService) UpdateNotificationPreferences(ctx context.Context, userID string, email, orders bool) (*models.User, error) {
	if err := s.repomanager.Profiles(s.db).UpsertNotifications(ctx, userID, email, orders); err != nil {
		return nil, fmt.Errorf("error updating preferences: %w", err)
	}
	return s.Me(ctx, userID)
}

// RefreshToken exchanges a refresh token for a new pair. The old token is
// deleted in the same transaction that stores the new one; a token already
// spent by a concurrent call is rejected as invalid.
func (s *IdentityService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *IdentityService) getUser(ctx context.Context, db dbx.DBTX, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// loadProfile attaches the profile to user. A user without one keeps a nil
// Profile.
func (s *IdentityService) loadProfile(ctx context.Context, db dbx.DBTX, user *models.User) error {
	profile, err := s.repomanager.Profiles(db).GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error loading profile: %w", err)
	}
	user.Profile = profile
	return nil
}

func (s *IdentityService) generateTokenPair(ctx context.Context, userID string, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
