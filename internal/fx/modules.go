package fx

import (
	"database/sql"
	"warzone-tracker/internal/api"
	"warzone-tracker/internal/config"
	"warzone-tracker/internal/database"
	"warzone-tracker/internal/db"
	"warzone-tracker/internal/logger"
	"warzone-tracker/internal/repository"
	"warzone-tracker/internal/server"
	"warzone-tracker/internal/service"
	"warzone-tracker/pkg/warzone"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideClient(auth *api.AuthHandler, cod *api.CodClient, logger zerolog.Logger) *warzone.Client {
	return warzone.New(auth, cod, logger)
}

// ClientModule provides a ready *warzone.Client without storage or HTTP server.
var ClientModule = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// api client
	fx.Provide(api.NewTransport),
	fx.Provide(api.NewSession),
	fx.Provide(api.NewAuthHandler),
	fx.Provide(api.NewCodClient),
	fx.Provide(ProvideClient),
)

var Module = fx.Options(
	ClientModule,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewLookupRepository),
	// svc
	fx.Provide(service.NewAuthService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(server.NewTrackerServer),
)
