package web

import (
	"net/http"

	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/service"
)

func (s *Server) handleListSoils(w http.ResponseWriter, r *http.Request) {
	soils, err := s.service.ListSoils(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, soils)
}

func (s *Server) handleCreateSoil(w http.ResponseWriter, r *http.Request) {
	var in service.NewSoil
	if err := decodeJSON(w, r, &in, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	soil, err := s.service.CreateSoil(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, soil)
}

func (s *Server) handleUpdateSoil(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch domain.SoilPatch
	if err := decodeJSON(w, r, &patch, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	soil, err := s.service.UpdateSoil(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, soil)
}
