package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/listkeeper/listkeeper-go/internal/config"
	"github.com/listkeeper/listkeeper-go/internal/handler"
	"github.com/listkeeper/listkeeper-go/internal/middleware"
	"github.com/listkeeper/listkeeper-go/internal/repository"
	"github.com/listkeeper/listkeeper-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	repo, err := openRepository(cfg)
	if err != nil {
		slog.Error("opening item store failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(cfg.AuthUsername, cfg.AuthPassword, cfg.AuthPasswordHash, tokenService)
	authHandler := handler.NewAuthHandler(authService)

	itemService := service.NewItemService(repo)
	itemHandler := handler.NewItemHandler(itemService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokenService))
		r.Get("/items", itemHandler.HandleList)
		r.Post("/items", itemHandler.HandleCreate)
		r.Put("/items/{id}", itemHandler.HandleUpdate)
		r.Delete("/items/{id}", itemHandler.HandleDelete)
	})

	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		r.NotFound(fs.ServeHTTP)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "backend", cfg.StoreBackend)
		var err error
		if cfg.TLSCert != "" && cfg.TLSKey != "" {
			err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// openRepository constructs the configured storage backend.
func openRepository(cfg config.Config) (repository.ItemRepository, error) {
	switch cfg.StoreBackend {
	case config.BackendKV:
		db, err := repository.OpenKV(cfg.KVPath)
		if err != nil {
			return nil, err
		}
		return repository.NewKVRepository(db, "items"), nil
	default:
		return repository.NewFileRepository(cfg.DataFile)
	}
}
