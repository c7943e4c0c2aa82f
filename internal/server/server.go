// Package server exposes the advisory engine over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/coverwise/coverwise/internal/compare"
	"github.com/coverwise/coverwise/internal/recommend"
	"github.com/coverwise/coverwise/internal/report"
	"github.com/coverwise/coverwise/internal/scheduler"
	"github.com/coverwise/coverwise/internal/store"
)

// Config holds the server's collaborators.
type Config struct {
	Port    int
	Log     zerolog.Logger
	DevMode bool

	Insurers        *store.InsurerRepository
	Products        *store.ProductRepository
	Customers       *store.CustomerRepository
	Needs           *store.NeedsRepository
	Recommendations *store.RecommendationRepository
	Market          *store.MarketRepository

	Recommender *recommend.Engine
	Comparer    *compare.Engine
	Reports     *report.Service

	// Optional; when set the market refresh endpoint triggers it.
	MarketRefresh scheduler.Job
}

// Server is the HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/insurers", func(r chi.Router) {
			r.Get("/", s.handleListInsurers)
			r.Get("/{id}", s.handleGetInsurer)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)
			r.Get("/{id}", s.handleGetProduct)
			r.Post("/compare", s.handleCompareProducts)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.handleListCustomers)
			r.Post("/", s.handleCreateCustomer)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCustomer)
				r.Put("/", s.handleUpdateCustomer)
				r.Post("/needs-analysis", s.handleRunNeedsAnalysis)
				r.Get("/needs-analysis", s.handleGetNeedsAnalysis)
				r.Post("/recommendations/generate", s.handleGenerateRecommendations)
				r.Get("/recommendations", s.handleListRecommendations)
				r.Post("/reports", s.handleGenerateReport)
				r.Get("/reports", s.handleListReports)
			})
		})

		r.Route("/calculator", func(r chi.Router) {
			r.Post("/needs-analysis", s.handleCalculatorNeeds)
			r.Post("/premium", s.handleCalculatorPremium)
			r.Post("/investment-projections", s.handleCalculatorProjections)
		})

		r.Route("/market-data", func(r chi.Router) {
			r.Get("/latest", s.handleMarketLatest)
			r.Get("/insurer/{id}", s.handleMarketForInsurer)
			r.Get("/trends/{id}", s.handleMarketTrends)
			r.Post("/refresh", s.handleMarketRefresh)
		})

		r.Get("/reports/{reference}", s.handleGetReport)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the mux for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
