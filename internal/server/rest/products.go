package rest

import (
	"net/http"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.ProductRequest
	if !s.decode(w, r, &req) {
		return
	}

	p, err := s.products.Create(r.Context(), identityFrom(r.Context()), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p.ToAPI())
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	sellerView := r.URL.Query().Get("view") == "seller"

	list, err := s.products.List(r.Context(), identityFrom(r.Context()), sellerView)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]api.Product, 0, len(list))
	for _, p := range list {
		out = append(out, p.ToAPI())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.ToAPI())
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.ProductRequest
	if !s.decode(w, r, &req) {
		return
	}

	owned, err := s.identity.AuthorizeProductOwner(r.Context(), identityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.products.Update(r.Context(), owned, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.ToAPI())
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	owned, err := s.identity.AuthorizeProductOwner(r.Context(), identityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.products.Delete(r.Context(), owned); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Product deleted successfully"})
}
