package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vbonduro/planttracker/internal/imagestore"
	"github.com/vbonduro/planttracker/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	service *service.TrackerService
	images  imagestore.Store
	router  chi.Router
	logger  *slog.Logger
}

func NewServer(svc *service.TrackerService, images imagestore.Store, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		images:  images,
		router:  chi.NewRouter(),
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(func(next http.Handler) http.Handler { return requestLogger(s.logger, next) })
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)

	s.router.Get("/api/health", s.handleHealth)

	s.router.Route("/api/plants", func(r chi.Router) {
		r.Get("/", s.handleListPlants)
		r.Post("/", s.handleCreatePlant)
		r.Get("/{id}", s.handleGetPlant)
		r.Put("/{id}", s.handleUpdatePlant)
		r.Delete("/{id}", s.handleRemovePlant)
	})

	// GET addresses a pot by its QR token, PUT by its numeric id.
	s.router.Route("/api/pots", func(r chi.Router) {
		r.Get("/", s.handleListPots)
		r.Post("/", s.handleCreatePot)
		r.Get("/{pot}", s.handleGetPotByQR)
		r.Put("/{pot}", s.handleUpdatePot)
	})

	s.router.Route("/api/soils", func(r chi.Router) {
		r.Get("/", s.handleListSoils)
		r.Post("/", s.handleCreateSoil)
		r.Put("/{id}", s.handleUpdateSoil)
	})

	s.router.Get("/api/history/{plant_id}", s.handleGetHistory)
	s.router.Post("/api/move", s.handleMove)

	s.router.Get("/qrcodes/{file}", s.handleGetQRCode)
}

// securityHeaders sets CSP and framing headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
