// @title PawCare API
// @version 1.0
// @description Backend de la clínica: mascotas, citas, recetas, usuarios, bitácora y reportes.
// @BasePath /api
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawcare/internal/adapters/blob/fs"
	"pawcare/internal/adapters/blob/s3"
	"pawcare/internal/adapters/storage/sqldb"
	"pawcare/internal/platform/config"
	"pawcare/internal/platform/logger"
	"pawcare/internal/ports/blob"
	"pawcare/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	photos, err := openBlob(ctx, cfg)
	if err != nil {
		return err
	}

	h, err := router.NewRouter(router.Options{
		Logger:         log,
		DB:             db,
		Photos:         photos,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		SeedDemoData:   cfg.SeedDemoData,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second, // uploads
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    cfg.Addr(),
			"storage": cfg.StorageDriver,
			"blob":    string(photos.Driver()),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openDB(ctx context.Context, cfg config.Config) (*sqldb.DB, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return sqldb.OpenPostgres(ctx, cfg.DBDSN)
	case config.StorageSQLite:
		return sqldb.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, nil
	}
}

func openBlob(ctx context.Context, cfg config.Config) (blob.Store, error) {
	if cfg.BlobDriver == config.BlobS3 {
		return s3.New(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return fs.New(cfg.UploadDir, fs.DefaultPublicPrefix)
}
