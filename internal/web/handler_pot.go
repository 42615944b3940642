package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/service"
)

func (s *Server) handleListPots(w http.ResponseWriter, r *http.Request) {
	pots, err := s.service.ListPots(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pots)
}

func (s *Server) handleGetPotByQR(w http.ResponseWriter, r *http.Request) {
	pot, err := s.service.GetPotByQR(r.Context(), chi.URLParam(r, "pot"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pot)
}

func (s *Server) handleCreatePot(w http.ResponseWriter, r *http.Request) {
	var in service.NewPot
	if err := decodeJSON(w, r, &in, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	pot, err := s.service.CreatePot(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pot)
}

func (s *Server) handleUpdatePot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pot")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch domain.PotPatch
	if err := decodeJSON(w, r, &patch, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	pot, err := s.service.UpdatePot(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pot)
}
