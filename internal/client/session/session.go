// Package session holds the client's view of who is logged in.
//
// A Store owns the bearer token and the last known user snapshot. Readers
// (the route guard, the setup wizard, the CLI prompt) take a Snapshot, which
// is a plain value and never changes under them. Only Register, Login,
// UpdateAccountType, Refresh, Restore, RefreshUser and Logout mutate the
// store, and at most one network-backed mutation runs at a time.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/client/client"
	"github.com/dmitrijs2005/shopnet/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/logging"
)

// ErrBusy is returned when a mutation is requested while another one is
// still waiting for the server.
var ErrBusy = errors.New("another request is in progress")

// Backend is the part of the API the store drives.
type Backend interface {
	SetToken(token string)
	Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*api.User, error)
	UpdateAccountType(ctx context.Context, accountType api.AccountType, profile api.ProfileFields) (*api.User, error)
}

// State is an immutable copy of the session.
type State struct {
	Token     string
	User      *api.User
	IsLoading bool
	LastError string
}

// Authenticated reports whether a token is held.
func (s State) Authenticated() bool {
	return s.Token != ""
}

// AccountType is the role of the current user, or unset when there is none.
func (s State) AccountType() api.AccountType {
	if s.User == nil {
		return api.AccountTypeUnset
	}
	return s.User.AccountType
}

type Store struct {
	backend Backend
	meta    metadata.Repository
	logger  logging.Logger

	mu           sync.Mutex
	state        State
	refreshToken string
	// epoch changes on every logout so a response that arrives after the
	// session ended is dropped.
	epoch uint64
}

func NewStore(backend Backend, meta metadata.Repository, logger logging.Logger) *Store {
	return &Store{
		backend: backend,
		meta:    meta,
		logger:  logger.With("module", "session"),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.User = copyUser(s.state.User)
	return st
}

func copyUser(u *api.User) *api.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Profile != nil {
		p := *u.Profile
		c.Profile = &p
	}
	return &c
}

// begin marks the store as loading. It returns the current epoch, which the
// caller compares before applying a response.
func (s *Store) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsLoading {
		return 0, ErrBusy
	}
	s.state.IsLoading = true
	s.state.LastError = ""
	return s.epoch, nil
}

// finish clears the loading flag and records err.
func (s *Store) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		s.state.LastError = err.Error()
	}
}

// finishWithToken is finish for calls that sent the bearer token. An
// unauthorized error means the server no longer accepts it and the session
// ends.
func (s *Store) finishWithToken(ctx context.Context, err error) {
	s.finish(err)
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info(ctx, "server rejected the session, logging out")
		s.clear(ctx)
	}
}

func (s *Store) Register(ctx context.Context, email, password, name string) error {
	epoch, err := s.begin()
	if err != nil {
		return err
	}

	res, err := s.backend.Register(ctx, email, password, name)
	if err == nil {
		s.establish(ctx, epoch, res)
		s.logger.Info(ctx, "registered", "user_id", res.User.ID)
	}
	s.finish(err)
	return err
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	epoch, err := s.begin()
	if err != nil {
		return err
	}

	res, err := s.backend.Login(ctx, email, password)
	if err == nil {
		s.establish(ctx, epoch, res)
		s.logger.Info(ctx, "logged in", "user_id", res.User.ID)
	}
	s.finish(err)
	return err
}

// establish installs a fresh session. Token and user are set together.
func (s *Store) establish(ctx context.Context, epoch uint64, res *api.AuthResponse) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	u := res.User
	s.state.Token = res.Token
	s.state.User = copyUser(&u)
	s.refreshToken = res.RefreshToken
	s.mu.Unlock()

	s.backend.SetToken(res.Token)
	s.persist(ctx, res.Token, res.RefreshToken)
}

// UpdateAccountType finishes onboarding on the server and stores the
// returned user.
func (s *Store) UpdateAccountType(ctx context.Context, accountType api.AccountType, profile api.ProfileFields) (*api.User, error) {
	if !s.Snapshot().Authenticated() {
		return nil, common.ErrUnauthenticated
	}

	epoch, err := s.begin()
	if err != nil {
		return nil, err
	}

	u, err := s.backend.UpdateAccountType(ctx, accountType, profile)
	if err == nil {
		s.setUser(epoch, u)
	}
	s.finishWithToken(ctx, err)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

// Refresh trades the stored refresh token for a new token pair. The user
// snapshot is kept.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	rt := s.refreshToken
	authenticated := s.state.Token != ""
	s.mu.Unlock()

	if !authenticated || rt == "" {
		return common.ErrUnauthenticated
	}

	epoch, err := s.begin()
	if err != nil {
		return err
	}

	pair, err := s.backend.Refresh(ctx, rt)
	if err == nil {
		s.mu.Lock()
		current := s.epoch == epoch
		if current {
			s.state.Token = pair.Token
			s.refreshToken = pair.RefreshToken
		}
		s.mu.Unlock()

		if current {
			s.backend.SetToken(pair.Token)
			s.persist(ctx, pair.Token, pair.RefreshToken)
		}
	}
	s.finishWithToken(ctx, err)
	return err
}

// Restore loads a persisted token and pairs it with a fresh user fetch.
// Without a stored token, or when the server rejects it, the store stays
// logged out and nil is returned. Other failures are returned and leave the
// stored token in place for the next attempt.
func (s *Store) Restore(ctx context.Context) error {
	epoch, err := s.begin()
	if err != nil {
		return err
	}

	err = s.restore(ctx, epoch)
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info(ctx, "stored session is no longer valid")
		s.finish(nil)
		s.clear(ctx)
		return nil
	}
	s.finish(err)
	return err
}

func (s *Store) restore(ctx context.Context, epoch uint64) error {
	tok, err := s.meta.Get(ctx, metadata.KeyToken)
	if errors.Is(err, common.ErrorNotFound) || (err == nil && len(tok) == 0) {
		return nil
	}
	if err != nil {
		return err
	}

	rt, err := s.meta.Get(ctx, metadata.KeyRefreshToken)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	s.backend.SetToken(string(tok))
	u, err := s.backend.Me(ctx)
	if err != nil {
		s.backend.SetToken("")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return nil
	}
	s.state.Token = string(tok)
	s.state.User = copyUser(u)
	s.refreshToken = string(rt)
	return nil
}

// RefreshUser replaces the user snapshot after a server mutation that
// returned one. It is ignored when logged out.
func (s *Store) RefreshUser(u *api.User) {
	if u == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Token == "" {
		return
	}
	s.state.User = copyUser(u)
}

func (s *Store) setUser(epoch uint64, u *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.state.Token == "" {
		return
	}
	s.state.User = copyUser(u)
}

// ObserveError ends the session when err says the server no longer accepts
// the token. It returns err unchanged.
func (s *Store) ObserveError(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) && s.Snapshot().Authenticated() {
		s.logger.Info(ctx, "session ended by server")
		s.clear(ctx)
	}
	return err
}

// Logout forgets the session locally. No server call is made.
func (s *Store) Logout(ctx context.Context) {
	s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	s.state.Token = ""
	s.state.User = nil
	s.refreshToken = ""
	s.mu.Unlock()

	s.backend.SetToken("")
	if err := s.meta.Delete(ctx, metadata.KeyToken); err != nil {
		s.logger.Warn(ctx, "failed to remove stored token", "error", err)
	}
	if err := s.meta.Delete(ctx, metadata.KeyRefreshToken); err != nil {
		s.logger.Warn(ctx, "failed to remove stored refresh token", "error", err)
	}
}

func (s *Store) persist(ctx context.Context, token, refreshToken string) {
	if err := s.meta.Set(ctx, metadata.KeyToken, []byte(token)); err != nil {
		s.logger.Warn(ctx, "failed to store token", "error", err)
	}
	if refreshToken == "" {
		return
	}
	if err := s.meta.Set(ctx, metadata.KeyRefreshToken, []byte(refreshToken)); err != nil {
		s.logger.Warn(ctx, "failed to store refresh token", "error", err)
	}
}
