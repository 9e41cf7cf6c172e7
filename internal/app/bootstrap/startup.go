// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/statcard/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// The doughnut capability is registered up front; handlers still call
// Ensure on every render.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts configured from environment", zap.Int("count", n))
	}

	deps.ChartReg.Ensure()
	logger.Info("chart engine ready",
		zap.String("strategy", deps.ChartReg.Strategy()),
		zap.Int("components", deps.ChartRegistry.Len()))
	return nil
}
