package rest

import (
	"net/http"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := s.notifications.List(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]api.Notification, 0, len(list))
	for _, n := range list {
		out = append(out, n.ToAPI())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.notifications.MarkRead(r.Context(), identityFrom(r.Context()).UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n.ToAPI())
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if _, err := s.notifications.MarkAllRead(r.Context(), identityFrom(r.Context()).UserID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "All notifications marked as read"})
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := s.notifications.Delete(r.Context(), identityFrom(r.Context()).UserID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Notification deleted"})
}
