package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vbonduro/planttracker/internal/imagestore"
	"github.com/vbonduro/planttracker/internal/qrcode"
)

func (s *Server) handleGetQRCode(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	if !qrcode.IsKey(file) {
		http.NotFound(w, r)
		return
	}

	reader, mimeType, err := s.images.Get(r.Context(), file)
	switch {
	case errors.Is(err, imagestore.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		http.Error(w, "failed to read qr code", http.StatusInternalServerError)
		s.logger.Error("read qr code failed", "file", file, "error", err)
		return
	}
	defer closeWithLog(reader, "qr code reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write qr code failed", "file", file, "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
