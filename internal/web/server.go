package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"carspect/internal/service"
)

type Server struct {
	service *service.InspectionService
	mux     *http.ServeMux
	logger  *slog.Logger
}

func NewServer(svc *service.InspectionService, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /catalog", s.handleGetCatalog)

	s.mux.HandleFunc("GET /inspections", s.handleListInspections)
	s.mux.HandleFunc("POST /inspections", s.handleCreateInspection)
	s.mux.HandleFunc("GET /inspections/{id}", s.handleGetInspection)
	s.mux.HandleFunc("DELETE /inspections/{id}", s.handleDeleteInspection)
	s.mux.HandleFunc("PUT /inspections/{id}/status", s.handleUpdateStatus)
	s.mux.HandleFunc("GET /inspections/{id}/report", s.handleGetReport)

	s.mux.HandleFunc("PUT /inspections/{id}/items/{category}/{item}/status", s.handleSetItemStatus)
	s.mux.HandleFunc("PUT /inspections/{id}/items/{category}/{item}/notes", s.handleSetItemNotes)
	s.mux.HandleFunc("PUT /inspections/{id}/items/{category}/{item}/rating", s.handleSetItemRating)
	s.mux.HandleFunc("DELETE /inspections/{id}/items/{category}/{item}/rating", s.handleClearItemRating)
	s.mux.HandleFunc("POST /inspections/{id}/items/{category}/{item}/images", s.handleUploadImage)
	s.mux.HandleFunc("DELETE /inspections/{id}/items/{category}/{item}/images/{key}", s.handleRemoveImage)

	s.mux.HandleFunc("GET /images/{key}", s.handleGetImage)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
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
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
