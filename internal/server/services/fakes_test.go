package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/dbx"
	"github.com/dmitrijs2005/shopnet/internal/server/config"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/products"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = 4
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.RefreshTokenValidityDuration = 2 * time.Hour
	return cfg
}

type memUsers struct {
	byID      map[string]*models.User
	seq       int
	getErr    error
	updateErr error
	// beforeClaim runs inside ClaimAccountType before the role is checked.
	beforeClaim func()
}

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrDuplicateEmail
		}
	}
	r.seq++
	cp := *u
	cp.ID = fmt.Sprintf("u%d", r.seq)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) update(id string, fn func(u *models.User)) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(u)
	return nil
}

func (r *memUsers) UpdateAccountType(_ context.Context, id string, t api.AccountType) error {
	return r.update(id, func(u *models.User) { u.AccountType = t })
}

func (r *memUsers) ClaimAccountType(_ context.Context, id string, t api.AccountType) error {
	if r.beforeClaim != nil {
		r.beforeClaim()
	}
	var locked bool
	err := r.update(id, func(u *models.User) {
		if u.AccountType != api.AccountTypeUnset {
			locked = true
			return
		}
		u.AccountType = t
	})
	if err != nil {
		return err
	}
	if locked {
		return common.ErrAccountTypeLocked
	}
	return nil
}

func (r *memUsers) UpdateName(_ context.Context, id, name string) error {
	return r.update(id, func(u *models.User) { u.Name = name })
}

func (r *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	return r.update(id, func(u *models.User) { u.PasswordHash = hash })
}

type memProfiles struct {
	byUser map[string]*models.Profile
	err    error
}

func (r *memProfiles) get(userID string) *models.Profile {
	p, ok := r.byUser[userID]
	if !ok {
		p = &models.Profile{ID: "pr-" + userID, UserID: userID, EmailNotifications: true, OrderUpdates: true}
		r.byUser[userID] = p
	}
	return p
}

func (r *memProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func keep(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (r *memProfiles) UpsertOnboarding(_ context.Context, in *models.Profile) (*models.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p := r.get(in.UserID)
	keep(&p.Phone, in.Phone)
	keep(&p.Address, in.Address)
	keep(&p.BusinessName, in.BusinessName)
	keep(&p.BusinessDescription, in.BusinessDescription)
	keep(&p.Preferences, in.Preferences)
	cp := *p
	return &cp, nil
}

func (r *memProfiles) UpsertContact(_ context.Context, userID, phone, address, image string) error {
	if r.err != nil {
		return r.err
	}
	p := r.get(userID)
	p.Phone, p.Address, p.ProfileImage = phone, address, image
	return nil
}

func (r *memProfiles) UpsertNotifications(_ context.Context, userID string, email, orders bool) error {
	if r.err != nil {
		return r.err
	}
	p := r.get(userID)
	p.EmailNotifications, p.OrderUpdates = email, orders
	return nil
}

type memProducts struct {
	byID      map[string]*models.Product
	seq       int
	createErr error
}

func (r *memProducts) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	cp := *p
	cp.ID = fmt.Sprintf("p%d", r.seq)
	cp.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Second)
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) List(_ context.Context) ([]*models.Product, error) {
	return r.filter(func(*models.Product) bool { return true }), nil
}

func (r *memProducts) ListBySeller(_ context.Context, sellerID string) ([]*models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.SellerID == sellerID }), nil
}

func (r *memProducts) filter(keep func(*models.Product) bool) []*models.Product {
	out := make([]*models.Product, 0)
	for i := r.seq; i >= 1; i-- {
		if p, ok := r.byID[fmt.Sprintf("p%d", i)]; ok && keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (r *memProducts) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	r.byID[p.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

type memNotifications struct {
	items     []*models.Notification
	createErr error
}

func (r *memNotifications) Create(_ context.Context, n *models.Notification) (*models.Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cp := *n
	cp.ID = fmt.Sprintf("n%d", len(r.items)+1)
	r.items = append(r.items, &cp)
	out := cp
	return &out, nil
}

func (r *memNotifications) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	out := make([]*models.Notification, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memNotifications) find(id, userID string) (int, bool) {
	for i, n := range r.items {
		if n.ID == id && n.UserID == userID {
			return i, true
		}
	}
	return 0, false
}

func (r *memNotifications) MarkRead(_ context.Context, id, userID string) (*models.Notification, error) {
	i, ok := r.find(id, userID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	r.items[i].Read = true
	return r.items[i], nil
}

func (r *memNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.UserID == userID && !item.Read {
			item.Read = true
			n++
		}
	}
	return n, nil
}

func (r *memNotifications) Delete(_ context.Context, id, userID string) error {
	i, ok := r.find(id, userID)
	if !ok {
		return common.ErrorNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

type memRefreshTokens struct {
	byToken   map[string]*models.RefreshToken
	createErr error
	deleteErr error
}

func (r *memRefreshTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byToken[token] = &models.RefreshToken{UserID: userID, TokenHash: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r *memRefreshTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rt, nil
}

func (r *memRefreshTokens) Delete(_ context.Context, token string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byToken[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byToken, token)
	return nil
}

func (r *memRefreshTokens) DeleteByUser(_ context.Context, userID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for k, rt := range r.byToken {
		if rt.UserID == userID {
			delete(r.byToken, k)
		}
	}
	return nil
}

type fakeRepoManager struct {
	users         *memUsers
	profiles      *memProfiles
	products      *memProducts
	notifications *memNotifications
	refreshTokens *memRefreshTokens
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:         &memUsers{byID: map[string]*models.User{}},
		profiles:      &memProfiles{byUser: map[string]*models.Profile{}},
		products:      &memProducts{byID: map[string]*models.Product{}},
		notifications: &memNotifications{},
		refreshTokens: &memRefreshTokens{byToken: map[string]*models.RefreshToken{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository        { return m.profiles }
func (m *fakeRepoManager) Products(dbx.DBTX) products.Repository        { return m.products }
func (m *fakeRepoManager) Notifications(dbx.DBTX) notifications.Repository {
	return m.notifications
}
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}
