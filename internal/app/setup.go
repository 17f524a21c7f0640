// Package app contains the application setup for the webshop service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/webshop/internal/config"
	"github.com/abgdnv/webshop/internal/service"
	"github.com/abgdnv/webshop/internal/store"
	"github.com/abgdnv/webshop/internal/transport/rest"
	"github.com/abgdnv/webshop/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/webshop/pkg/config"
	"github.com/abgdnv/webshop/pkg/messaging"
	"github.com/abgdnv/webshop/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

type Dependencies struct {
	Store          store.ProductStore
	ProductService service.ProductService
	Gatherer       prometheus.Gatherer
	Logger         *slog.Logger
}

// SetupDependencies wires the service on top of productStore.
// The service announces saved products through publisher and reports each publish to rec.
func SetupDependencies(productStore store.ProductStore, publisher messaging.Publisher, rec service.PublishRecorder, gatherer prometheus.Gatherer, logger *slog.Logger) *Dependencies {
	pService := service.NewService(productStore, publisher, rec, logger)

	return &Dependencies{
		Store:          productStore,
		ProductService: pService,
		Gatherer:       gatherer,
		Logger:         logger,
	}
}

// NewStore opens the product store selected by cfg.Storage.Driver.
// For the mongo driver the returned store owns the client and disconnects it on Close.
func NewStore(ctx context.Context, cfg *config.Config, rec store.Recorder, logger *slog.Logger) (store.ProductStore, error) {
	opts := []store.Option{
		store.WithRecorder(rec),
		store.WithStrictTypes(cfg.Mongo.StrictTypes),
	}
	switch cfg.Storage.Driver {
	case pkgconfig.StorageDriverMemory:
		logger.Info("Using in-memory product store")
		return store.NewInMemoryStore(opts...), nil
	case pkgconfig.StorageDriverMongo, "":
		client, err := bootstrap.NewMongoClient(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			return nil, err
		}
		return store.NewMongoStore(client, cfg.Mongo.Database, cfg.Mongo.Collection, logger, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// SetupHttpHandler initializes the routes and middleware of the webshop service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the webshop service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Gatherer, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the webshop service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux, "webshop-http")
}
