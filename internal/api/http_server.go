package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Services are the collaborators behind the HTTP API.
type Services struct {
	Bookings domain.BookingService
	Items    domain.ItemService
	Users    domain.UserService
	Exporter *export.OwnerExporter
	// Limiter is the per-caller limiter; nil disables it.
	Limiter domain.RateLimiter
	Store   Pinger
}

// HTTPServer exposes the booking API over HTTP.
type HTTPServer struct {
	cfg    config.APIConfig
	svc    Services
	server *http.Server
	auth   *HTTPAuth
	log    zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, svc Services, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{cfg: cfg, svc: svc, auth: NewHTTPAuth(cfg), log: zerolog.Nop()}
	if logger != nil {
		srv.log = logger.With().Str("component", "http").Logger()
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return srv
}

// Handler returns the root handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Wrap)

		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{id}", s.handleGetUser)

		r.Group(func(r chi.Router) {
			r.Use(s.requireCaller)

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", s.handleCreateBooking)
				r.Get("/", s.handleListBookerBookings)
				r.Get("/owner", s.handleListOwnerBookings)
				r.Get("/owner/export", s.handleExportOwnerBookings)
				r.Get("/{id}", s.handleGetBooking)
				r.Patch("/{id}", s.handleResolveBooking)
			})

			r.Route("/items", func(r chi.Router) {
				r.Post("/", s.handleCreateItem)
				r.Get("/", s.handleListOwnerItems)
				r.Get("/{id}", s.handleGetItem)
			})
		})
	})

	return r
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.svc.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.svc.Store.Ping(ctx); err != nil {
			s.log.Warn().Err(err).Msg("readiness check failed")
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *HTTPServer) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.ObserveHTTP(route, status, dur.Seconds())

		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", dur).
			Msg("http request")
	})
}

type callerKey struct{}

// requireCaller reads the caller id header and applies the per-caller limit.
func (s *HTTPServer) requireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(s.cfg.CallerHeader))
		if raw == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("missing %s header", s.cfg.CallerHeader))
			return
		}
		callerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s header", s.cfg.CallerHeader))
			return
		}

		if s.svc.Limiter != nil && s.cfg.CallerLimit.Enabled {
			window := time.Duration(s.cfg.CallerLimit.WindowSeconds) * time.Second
			allowed, err := s.svc.Limiter.CheckRateLimit(r.Context(), callerID, s.cfg.CallerLimit.Requests, window)
			if err != nil {
				// лимитер недоступен, пропускаем запрос
				s.log.Warn().Err(err).Int64("caller_id", callerID).Msg("caller rate limit check failed")
			} else if !allowed {
				metrics.IncRateLimited("caller")
				writeError(w, http.StatusTooManyRequests, errRateLimited.Error())
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, callerID)))
	})
}

func callerFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(callerKey{}).(int64)
	return id
}

// writeDomainError maps service error kinds to HTTP statuses.
func (s *HTTPServer) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedState):
		metrics.IncUnsupportedState()
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
