package api

import (
	"errors"
	"net/http"

	"dealership/internal/auth"
	"dealership/internal/denylist"
	"dealership/internal/middleware"
	"dealership/internal/store"
	"dealership/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Accounts  store.AccountStore
	Inventory store.InventoryStore
	Messages  store.MessageStore

	Hasher  *auth.Hasher
	Codec   *auth.TokenCodec
	Carrier *auth.SessionCarrier
	Revoker denylist.Revoker
	Gate    *middleware.Gate
	Views   *view.Renderer
	Logger  *zap.Logger

	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
}

type Server struct {
	accounts  store.AccountStore
	inventory store.InventoryStore
	messages  store.MessageStore

	hasher  *auth.Hasher
	codec   *auth.TokenCodec
	carrier *auth.SessionCarrier
	revoker denylist.Revoker
	gate    *middleware.Gate
	views   *view.Renderer
	logger  *zap.Logger

	gatherer prometheus.Gatherer
	router   *chi.Mux
}

func NewServer(d Deps) (*Server, error) {
	switch {
	case d.Accounts == nil, d.Inventory == nil, d.Messages == nil:
		return nil, errors.New("api.NewServer: stores are required")
	case d.Hasher == nil, d.Codec == nil, d.Carrier == nil, d.Gate == nil:
		return nil, errors.New("api.NewServer: auth components are required")
	case d.Views == nil:
		return nil, errors.New("api.NewServer: renderer is required")
	}

	s := &Server{
		accounts:  d.Accounts,
		inventory: d.Inventory,
		messages:  d.Messages,
		hasher:    d.Hasher,
		codec:     d.Codec,
		carrier:   d.Carrier,
		revoker:   d.Revoker,
		gate:      d.Gate,
		views:     d.Views,
		logger:    d.Logger,
		gatherer:  d.Gatherer,
	}
	if s.revoker == nil {
		s.revoker = denylist.Nop{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	s.router = s.RegisterRoutes()
	return s, nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}

func (s *Server) livez(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
