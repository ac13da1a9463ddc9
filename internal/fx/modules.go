package fx

import (
	"context"
	"database/sql"

	"protocol-tracker/internal/config"
	"protocol-tracker/internal/database"
	"protocol-tracker/internal/db"
	"protocol-tracker/internal/logger"
	"protocol-tracker/internal/realtime"
	"protocol-tracker/internal/repository"
	"protocol-tracker/internal/router"
	"protocol-tracker/internal/server"
	"protocol-tracker/internal/service"
	"protocol-tracker/internal/storage"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideUploader returns a nil uploader when no archive bucket is configured.
func ProvideUploader(cfg *config.Config, logger zerolog.Logger) (storage.FileUploader, error) {
	if !cfg.Archive.Enabled() {
		logger.Info().Msg("archive storage disabled")
		return nil, nil
	}
	return storage.NewS3Uploader(context.Background(), storage.S3UploaderConfig{
		Endpoint:        cfg.Archive.Endpoint,
		Bucket:          cfg.Archive.Bucket,
		AccessKeyID:     cfg.Archive.AccessKeyID,
		SecretAccessKey: cfg.Archive.SecretAccessKey,
		Region:          cfg.Archive.Region,
	})
}

func ProvideNotifier(hub *realtime.Hub) service.ChangeNotifier {
	return hub
}

func ProvideSeasonChecker(seasons *service.SeasonService) realtime.SeasonChecker {
	return seasons
}

var Module = fx.Options(
	fx.Provide(logger.New),
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewMatchRepository),
	// storage
	fx.Provide(ProvideUploader),
	// realtime
	fx.Provide(realtime.NewHub),
	fx.Provide(ProvideNotifier),
	fx.Provide(ProvideSeasonChecker),
	fx.Provide(realtime.NewHandler),
	// svc
	fx.Provide(service.NewSeasonService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewArchiveService),
	// server
	fx.Provide(server.NewTrackerServer),
	fx.Provide(router.New),
)
