package web

import (
	"net/http"

	"github.com/vbonduro/planttracker/internal/service"
)

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req service.MoveRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	plant, err := s.service.Move(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plant)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	plantID, err := pathID(r, "plant_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	history, err := s.service.GetHistory(r.Context(), plantID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
