package rest

import (
	"net/http"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/validation"
)

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateProfileRequest
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.identity.UpdateProfile(r.Context(), identityFrom(r.Context()).UserID, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse(u))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req api.ChangePasswordRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := validation.Struct(req).First(); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.identity.ChangePassword(r.Context(), identityFrom(r.Context()).UserID,
		req.CurrentPassword, req.NewPassword); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Password updated successfully"})
}

func (s *Server) handleNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	var req api.NotificationSettingsRequest
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.identity.UpdateNotificationPreferences(r.Context(), identityFrom(r.Context()).UserID,
		req.EmailNotifications, req.OrderUpdates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse(u))
}
