// Package httpserver exposes the CampusXchange JSON API.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/campusxchange/server/internal/events"
	"github.com/campusxchange/server/internal/model"
	"github.com/campusxchange/server/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth        service.AuthService
	catalog     service.CatalogService
	collections service.CollectionService
	requests    service.RequestService
	bus         *events.Bus
	log         *zap.Logger
	signKey     []byte
}

// New constructs a Server with injected services.
func New(
	auth service.AuthService,
	catalog service.CatalogService,
	collections service.CollectionService,
	requests service.RequestService,
	bus *events.Bus,
	log *zap.Logger,
	signKey []byte,
) *Server {
	return &Server{
		auth:        auth,
		catalog:     catalog,
		collections: collections,
		requests:    requests,
		bus:         bus,
		log:         log,
		signKey:     signKey,
	}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(RequestLogging(s.log))
	r.Use(Auth(s.signKey))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/items", s.handleListItems)
		r.Post("/items", s.handleCreateItem)
		r.Get("/items/{id}", s.handleGetItem)

		r.Route("/cart", s.collectionRoutes(model.KindCart))
		r.Route("/wishlist", s.collectionRoutes(model.KindWishlist))

		r.Post("/requests", s.handleCreateRequest)
		r.Post("/checkout", s.handleCheckout)
		r.Get("/requests/pending", s.handlePendingRequests)
		r.Get("/requests/accepted", s.handleAcceptedRequests)
		r.Get("/requests/received", s.handleReceivedRequests)
		r.Post("/requests/{id}/accept", s.handleAccept)
		r.Post("/requests/{id}/reject", s.handleReject)

		r.Get("/events", s.handleEvents)
	})

	return r
}
