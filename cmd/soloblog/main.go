package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// TLS roots for scratch containers, so the mongo backend can dial
	// TLS-terminated deployments without a system cert bundle.
	_ "golang.org/x/crypto/x509roots/fallback"

	httphandler "github.com/jcarver/soloblog/internal/adapter/driving/http"
	"github.com/jcarver/soloblog/internal/adapter/driving/web"
	"github.com/jcarver/soloblog/internal/auth"
	"github.com/jcarver/soloblog/internal/config"
	"github.com/jcarver/soloblog/internal/domain/port/driven"
	"github.com/jcarver/soloblog/internal/upload"

	"github.com/jcarver/soloblog/internal/adapter/driven/jsonfile"
	mongostore "github.com/jcarver/soloblog/internal/adapter/driven/mongo"
	sqliteadapter "github.com/jcarver/soloblog/internal/adapter/driven/sqlite"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing credentials or secret).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"backend", cfg.Backend,
		"upload_dir", cfg.UploadDir,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the selected post store backend.
	posts, closeStore, err := openPostStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	slog.Info("post store opened", "backend", cfg.Backend)

	// 4. Wire the authenticator and the upload saver.
	authn := auth.NewAuthenticator([]byte(cfg.JWTSecret), cfg.AdminUsername, cfg.AdminPassword)

	uploads, err := upload.NewSaver(cfg.UploadDir)
	if err != nil {
		return err
	}

	// 5. Wire driving adapters and the route table.
	logger := slog.Default()
	webHandler := web.NewHandler(posts, authn, logger)
	apiHandler := httphandler.NewHandler(posts, uploads, logger)
	handler := httphandler.NewServeMux(apiHandler, webHandler, authn, logger)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	slog.Info("soloblog started", "listen_addr", cfg.ListenAddr)
	slog.Info(fmt.Sprintf("homepage: http://%s/", cfg.ListenAddr))
	slog.Info(fmt.Sprintf("admin page: http://%s/admin", cfg.ListenAddr))

	// 6. Wait for a shutdown signal or a server failure.
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}
	slog.Info("shutting down")

	// 7. Graceful shutdown with a 10s drain window.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// openPostStore constructs the PostStore implementation selected by the
// configuration, returning a close function for whatever resources it holds.
func openPostStore(ctx context.Context, cfg *config.Config) (driven.PostStore, func(), error) {
	switch cfg.Backend {
	case config.BackendFile:
		store, err := jsonfile.New(cfg.DataPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case config.BackendSQLite:
		db, err := sqliteadapter.NewDB(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database", "error", err)
			}
		}
		return sqliteadapter.NewPostRepo(db), closeFn, nil

	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		store, err := mongostore.New(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Close(disconnectCtx); err != nil {
				slog.Error("error closing mongo client", "error", err)
			}
		}
		return store, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
