package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"applica-cv/internal/adapter/auth"
	httpadapter "applica-cv/internal/adapter/http"
	repo "applica-cv/internal/adapter/repository"
	"applica-cv/internal/adapter/storage"
	"applica-cv/internal/config"
	"applica-cv/internal/infrastructure/migration"
	"applica-cv/internal/logger"
	"applica-cv/internal/usecase"
	infra "applica-cv/pkg/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.Log.Level, !cfg.IsProduction())

	ctx := context.Background()

	pool, err := infra.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("database not available")
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	profilesRepo := repo.NewProfilesRepo(pool)
	historyRepo := repo.NewCVDocumentsRepo(pool)

	var blobs usecase.BlobStore
	var local *storage.LocalStore
	switch cfg.Storage.Driver {
	case config.StorageSupabase:
		blobs = storage.NewSupabaseStore(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Storage.Bucket)
	default:
		local = storage.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
		blobs = local
	}

	renderer := infra.NewChromedpRenderer(
		infra.WithExecPath(cfg.Render.ChromePath),
		infra.WithTimeout(cfg.RenderTimeout()),
	)

	profiles := usecase.NewProfileService(profilesRepo)
	cvs := usecase.NewCVService(renderer, blobs, historyRepo, profiles)

	app := httpadapter.NewApp()
	if local != nil {
		app.Static("/files", local.Root(), fiber.Static{Download: true})
	}
	h := httpadapter.NewHandler(cvs, profiles)
	httpadapter.Register(app, h, auth.Middleware(auth.NewHMACVerifier(cfg.Auth.JWTSecret)))

	go func() {
		log.Info().Str("port", cfg.App.Port).Str("storage", cfg.Storage.Driver).Msg("server listening")
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
