// Package httpapi exposes the catalog and quoting service as a JSON API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/grantdozier/dtg-fabrication-automations/internal/model"
	"github.com/grantdozier/dtg-fabrication-automations/internal/quoting"
)

// Catalog is the record store behind the catalog endpoints.
type Catalog interface {
	CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)

	CreateMaterial(ctx context.Context, m model.Material) (model.Material, error)
	GetMaterial(ctx context.Context, id int64) (model.Material, error)
	ListMaterials(ctx context.Context) ([]model.Material, error)

	CreateMachine(ctx context.Context, m model.Machine) (model.Machine, error)
	GetMachine(ctx context.Context, id int64) (model.Machine, error)
	ListMachines(ctx context.Context) ([]model.Machine, error)

	CreatePart(ctx context.Context, p model.Part) (model.Part, error)
	GetPart(ctx context.Context, id int64) (model.Part, error)
	ListParts(ctx context.Context) ([]model.Part, error)
}

type Server struct {
	catalog Catalog
	quotes  *quoting.Service
	health  func(context.Context) error
	log     zerolog.Logger
	timeout time.Duration
}

type Option func(*Server)

// WithHealthCheck makes GET /health report the result of check.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) { s.health = check }
}

// WithRequestTimeout bounds every request's context. The default is 30 seconds.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

func New(catalog Catalog, quotes *quoting.Service, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		catalog: catalog,
		quotes:  quotes,
		log:     log,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/customers", s.handleListCustomers)
		r.Post("/customers", s.handleCreateCustomer)
		r.Get("/customers/{id}", s.handleGetCustomer)

		r.Get("/materials", s.handleListMaterials)
		r.Post("/materials", s.handleCreateMaterial)
		r.Get("/materials/{id}", s.handleGetMaterial)

		r.Get("/machines", s.handleListMachines)
		r.Post("/machines", s.handleCreateMachine)
		r.Get("/machines/{id}", s.handleGetMachine)

		r.Get("/parts", s.handleListParts)
		r.Post("/parts", s.handleCreatePart)
		r.Get("/parts/{id}", s.handleGetPart)

		r.Post("/quotes/calculate", s.handleCalculate)
		r.Post("/quotes/calculate-detailed", s.handleCalculateDetailed)
		r.Get("/quotes", s.handleListQuotes)
		r.Post("/quotes", s.handleCreateQuote)
		r.Get("/quotes/{id}", s.handleGetQuote)
		r.Get("/quotes/{id}/text", s.handleQuoteText)
		r.Get("/quotes/{id}/export.xlsx", s.handleQuoteWorkbook)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
