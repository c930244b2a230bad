package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/decodahealth/patient-record/config"
	"github.com/decodahealth/patient-record/logger"
	"github.com/decodahealth/patient-record/record"
	"github.com/decodahealth/patient-record/session"
	"github.com/decodahealth/patient-record/store"
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

// NewSessionManager wires the repository in as both loader and sink and pins
// the acting provider identity from configuration.
func NewSessionManager(repo store.Repository, cfg *config.Config, sugared *zap.SugaredLogger) (session.Manager, error) {
	actor := record.PersonRef{
		Id:        cfg.ProviderId,
		FirstName: cfg.ProviderFirstName,
		LastName:  cfg.ProviderLastName,
		Email:     cfg.ProviderEmail,
	}
	return session.NewManager(repo, repo, actor, sugared)
}

// Dependencies is the service's DI graph. The CLI reuses it to run one-shot
// commands against the same wiring.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Sugar,
			config.NewConfig,
			store.NewConfig,
			store.NewClient,
			store.NewDatabase,
			store.NewRepository,
			NewSessionManager,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	deps := append(
		Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(deps...).Run()
}
