package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ShopKart/internal/cart"
	"ShopKart/internal/catalog"
	"ShopKart/internal/identity"
	"ShopKart/pkg/kit"
)

type Deps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	Catalog catalog.Store
	Cart    cart.Store

	// DefaultUserID owns the shared anonymous cart.
	DefaultUserID string
	// Identity enables bearer-token user resolution when non-nil.
	Identity *identity.TokenMaker
}

const readyTimeout = 1 * time.Second

// NewHandler builds the full shop router: catalog and cart servers under
// /api, liveness/readiness probes at the root, optional metrics.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: deps.Log}
	cartSrv := &cart.Server{
		Store:         deps.Cart,
		Catalog:       deps.Catalog,
		Log:           deps.Log,
		DefaultUserID: deps.DefaultUserID,
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps))

	r.Route("/api", func(ar chi.Router) {
		if deps.Identity != nil {
			ar.Use(identity.Optional(deps.Identity))
		}

		ar.Get("/health", health(deps))
		catalogSrv.Register(ar)
		cartSrv.Register(ar)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		kit.WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps Deps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer(deps.Log))
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps Deps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func readyz(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Catalog.Ping(ctx); err != nil {
			notReady(w, r, deps.Log, err)
			return
		}
		if err := deps.Cart.Ping(ctx); err != nil {
			notReady(w, r, deps.Log, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func notReady(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if log != nil {
		log.Warn("readyz failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready")
}

type healthResponse struct {
	Success       bool   `json:"success"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	ProductsCount int    `json:"products_count"`
	ActiveCarts   int    `json:"active_carts"`
}

func health(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := deps.Catalog.Count(r.Context())
		if err != nil {
			healthError(w, r, deps.Log, err)
			return
		}
		carts, err := deps.Cart.ActiveCarts(r.Context())
		if err != nil {
			healthError(w, r, deps.Log, err)
			return
		}

		kit.WriteJSON(w, http.StatusOK, healthResponse{
			Success:       true,
			Status:        "healthy",
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			ProductsCount: products,
			ActiveCarts:   carts,
		})
	}
}

func healthError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if log != nil {
		log.Error("health check failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
}
