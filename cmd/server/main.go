package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ShopKart/internal/api"
	"ShopKart/internal/cart"
	"ShopKart/internal/catalog"
	"ShopKart/internal/identity"
	"ShopKart/pkg/kit"
)

const bootstrapTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	service := "shop-api"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	dbURL := os.Getenv("DATABASE_URL")
	defaultUser := getenv("DEFAULT_USER_ID", "default")
	jwtSecret := os.Getenv("JWT_SECRET")
	seedOn := getenv("SEED", "1") == "1"

	catalogStore, cartStore := buildStores(log, dbURL, seedOn)

	var tokens *identity.TokenMaker
	if jwtSecret != "" {
		tokens = identity.NewTokenMaker(jwtSecret)
	}

	h := api.NewHandler(api.Deps{
		Log:      log,
		Service:  service,
		Registry: prometheus.NewRegistry(),

		MetricsEnabled: getenv("METRICS_ENABLED", "0") == "1",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),

		Catalog:       catalogStore,
		Cart:          cartStore,
		DefaultUserID: defaultUser,
		Identity:      tokens,
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStores(log *zap.Logger, dbURL string, seedOn bool) (catalog.Store, cart.Store) {
	if dbURL == "" {
		var seed []catalog.Product
		if seedOn {
			seed = catalog.SeedProducts()
		}
		log.Info("using in-memory stores", zap.Int("seed_products", len(seed)))
		return catalog.NewMemStore(seed), cart.NewMemStore()
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	catalogStore := catalog.NewPostgresStore(db)
	if err := catalogStore.EnsureSchema(ctx); err != nil {
		log.Fatal("catalog schema", zap.Error(err))
	}
	if seedOn {
		if err := catalogStore.SeedIfEmpty(ctx, catalog.SeedProducts()); err != nil {
			log.Fatal("catalog seed", zap.Error(err))
		}
	}

	cartStore := cart.NewPostgresStore(db)
	if err := cartStore.EnsureSchema(ctx); err != nil {
		log.Fatal("cart schema", zap.Error(err))
	}

	log.Info("using postgres stores")
	return catalogStore, cartStore
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
