package rest

import "net/http"

func (s *Server) handlePresign(w http.ResponseWriter, r *http.Request) {
	res, err := s.images.PresignUpload(r.Context(), identityFrom(r.Context()).UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
