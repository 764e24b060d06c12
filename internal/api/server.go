// Package api exposes the check-in service over HTTP for companion apps.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pulsecheck/pulse/internal/checkin"
	"github.com/pulsecheck/pulse/internal/logger"
	"github.com/pulsecheck/pulse/internal/storage"
	"github.com/pulsecheck/pulse/internal/validation"
)

type Server struct {
	svc    *checkin.Service
	store  storage.Provider
	router *mux.Router
}

func New(svc *checkin.Service, store storage.Provider) *Server {
	s := &Server{svc: svc, store: store, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(logRequests)

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/clinics", s.listClinics).Methods(http.MethodGet)

	u := api.PathPrefix("/users/{user}").Subrouter()
	u.HandleFunc("/checkins", s.submitCheckin).Methods(http.MethodPost)
	u.HandleFunc("/checkins", s.listCheckins).Methods(http.MethodGet)
	u.HandleFunc("/nudge", s.nudgeStatus).Methods(http.MethodGet)
	u.HandleFunc("/nudge/dismiss", s.dismissNudge).Methods(http.MethodPost)
	u.HandleFunc("/nudge/evaluate", s.evaluate).Methods(http.MethodPost)
	u.HandleFunc("/streak", s.streak).Methods(http.MethodGet)
	u.HandleFunc("/appointments", s.listAppointments).Methods(http.MethodGet)
	u.HandleFunc("/appointments", s.bookAppointment).Methods(http.MethodPost)
	u.HandleFunc("/appointments/{id}/{action:confirm|cancel|complete}", s.transitionAppointment).Methods(http.MethodPost)
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.router)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error  string                       `json:"error"`
	Fields []validation.ValidationError `json:"fields,omitempty"`
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: verrs})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, checkin.ErrInvalidTransition), errors.Is(err, checkin.ErrNotModifiable),
		errors.Is(err, checkin.ErrNoClinic):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if _, err := s.store.GetSettings(); err != nil {
		logger.Warn("Health check failed", "error", err)
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) listClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := s.store.GetAllClinics()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clinics)
}

// queryDays reads ?days=N; a missing value means all entries.
func queryDays(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
