// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/statcard/internal/app/features/statcard"
	cardstore "github.com/dalemusser/statcard/internal/app/store/cards"
	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"github.com/dalemusser/statcard/internal/app/system/timeouts"
	"github.com/dalemusser/statcard/internal/app/system/tracing"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and creates the chart engine registry and
// trace provider.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	tp, err := tracing.NewProvider(tracing.Config{
		Enabled:     appCfg.TracingEnabled,
		Exporter:    appCfg.TracingExporter,
		SampleRate:  appCfg.TracingSampleRate,
		ServiceName: "statcard",
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("tracing: %w", err)
	}

	registry := chartengine.NewRegistry()
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		ChartRegistry: registry,
		ChartReg:      statcard.NewRegistration(registry, logger),
		Tracing:       tp,
	}, nil
}

// EnsureSchema sets up indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	if err := cardstore.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	return nil
}
