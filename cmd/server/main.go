package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/browser"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"market/internal/cache"
	"market/internal/config"
	h "market/internal/http"
	"market/internal/repository"
	"market/internal/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.Load()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directory")
	}

	repo, err := repository.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := repo.SeedProducts(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalog")
	}

	var productCache cache.ProductCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		productCache = cache.NewRedisCache(client)
		log.Info().Str("addr", cfg.RedisAddr).Msg("catalog cache enabled")
	}

	catalogService := service.NewCatalogService(repo, productCache)
	cartService := service.NewCartService(repo, repo)

	productHandler := h.NewProductHandler(catalogService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	countriesHandler := h.NewCountriesHandler(cfg.StaticDir)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{id}", productHandler.GetProduct)
		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/add", cartHandler.AddItem)
		r.Post("/checkout", cartHandler.Checkout)
		r.Get("/countries", countriesHandler.ListCountries)
	})

	// storefront assets
	r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bind listener")
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("storefront starting")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// the listener is bound, so the landing page is reachable
	if cfg.OpenBrowser {
		url := "http://localhost:" + cfg.HTTPPort + "/"
		if err := browser.OpenURL(url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to open browser")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
