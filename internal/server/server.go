// Package server publishes a set of venues' opening hours over HTTP, and
// streams their transitions to websocket clients.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	openinghours "github.com/Xevion/go-openinghours"
)

// DefaultHorizon bounds the next open/close searches of the status endpoint.
const DefaultHorizon = 366 * 24 * time.Hour

type Server struct {
	venues  map[string]*openinghours.OpeningHours
	names   []string
	horizon time.Duration
	now     func() time.Time

	router   chi.Router
	registry *prometheus.Registry
	open     *prometheus.GaugeVec
	queries  *prometheus.CounterVec

	mu      sync.Mutex
	clients map[string]*client
}

type Option func(*Server)

// WithClock replaces time.Now as the default instant of the status and week
// endpoints.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithHorizon bounds the next open/close searches.
func WithHorizon(horizon time.Duration) Option {
	return func(s *Server) {
		s.horizon = horizon
	}
}

func New(venues map[string]*openinghours.OpeningHours, opts ...Option) *Server {
	s := &Server{
		venues:   venues,
		horizon:  DefaultHorizon,
		now:      time.Now,
		registry: prometheus.NewRegistry(),
		clients:  make(map[string]*client),
	}
	for name := range venues {
		s.names = append(s.names, name)
	}
	slices.Sort(s.names)

	for _, opt := range opts {
		opt(s)
	}

	factory := promauto.With(s.registry)
	s.open = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "openinghours_venue_open",
		Help: "Whether the venue is open (1) or closed (0)",
	}, []string{"venue"})
	s.queries = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "openinghours_queries_total",
		Help: "The total number of opening hours queries",
	}, []string{"endpoint"})

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/venues", s.handleVenues)
	r.Route("/venues/{venue}", func(r chi.Router) {
		r.Use(s.venueCtx)
		r.Get("/status", s.handleStatus)
		r.Get("/dates/{date}", s.handleDate)
		r.Get("/week", s.handleWeek)
		r.Get("/structured-data", s.handleStructuredData)
	})
	r.Get("/ws", s.handleWebsocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Handler returns the HTTP handler serving every endpoint.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Watch registers every venue with w, so that transitions are broadcast to
// websocket clients and reflected in the metrics.
func (s *Server) Watch(w *openinghours.Watcher) error {
	var errs []error
	for _, name := range s.names {
		if err := w.Register(name, s.venues[name], s.Broadcast); err != nil {
			slog.Warn("Venue will not be watched", "venue", name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
		s.closeClients()
	}()

	slog.Info("Serving opening hours", "addr", addr, "venues", len(s.names))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// WebSocket upgrader; the stream is read-only so any origin may subscribe.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
