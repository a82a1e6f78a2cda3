package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/gracepan/portfolio/internal/config"
	"github.com/gracepan/portfolio/internal/content"
	"github.com/gracepan/portfolio/internal/markdown"
	"github.com/gracepan/portfolio/internal/server"
	"github.com/gracepan/portfolio/internal/visits"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	catalog, err := content.Load(os.DirFS(cfg.ContentDir))
	if err != nil {
		return err
	}
	logger.Info("content loaded", "dir", cfg.ContentDir, "projects", catalog.Len())

	about, err := markdown.ReadPage(cfg.AboutFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("no about page", "path", cfg.AboutFile)
	case err != nil:
		return err
	}

	store, err := visits.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := server.New(server.Deps{
		Site:    cfg.Site,
		Catalog: catalog,
		Visits:  store,
		About:   about,
		Admin: server.AdminCredentials{
			Username:     cfg.AdminUsername,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
		},
		ImagesDir: cfg.ImagesDir,
		BaseURL:   cfg.BaseURL,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanupVisits(ctx, store, logger)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Open typing streams end with the signal context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpSrv.Addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// cleanupVisits drops expired visitor rows at startup and once a day.
func cleanupVisits(ctx context.Context, store *visits.Store, logger *slog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		n, err := store.Cleanup(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Warn("visitor cleanup failed", "error", err)
		case n > 0:
			logger.Info("privacy cleanup", "removed", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
