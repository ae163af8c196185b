package rest

import (
	"net/http"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/dmitrijs2005/shopnet/internal/server/services"
	"github.com/dmitrijs2005/shopnet/internal/validation"
)

func authResponse(res *services.AuthResult) api.AuthResponse {
	return api.AuthResponse{User: res.User.ToAPI(), Token: res.Token, RefreshToken: res.RefreshToken}
}

func userResponse(u *models.User) api.UserResponse {
	return api.UserResponse{User: u.ToAPI()}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.identity.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", res.User.ID)
	writeJSON(w, http.StatusCreated, authResponse(res))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := validation.Struct(req).First(); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(res))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if !s.decode(w, r, &req) {
		return
	}

	pair, err := s.identity.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.TokenResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.identity.Me(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse(u))
}

func (s *Server) handleUpdateAccountType(w http.ResponseWriter, r *http.Request) {
	var req api.AccountTypeRequest
	if !s.decode(w, r, &req) {
		return
	}

	id := identityFrom(r.Context())
	u, err := s.identity.UpdateAccountType(r.Context(), id.UserID, req.AccountType, req.Profile)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Account type set", "user_id", id.UserID, "account_type", u.AccountType)
	writeJSON(w, http.StatusOK, userResponse(u))
}
