// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/statcard/internal/app/features/errors"
	healthfeature "github.com/dalemusser/statcard/internal/app/features/health"
	homefeature "github.com/dalemusser/statcard/internal/app/features/home"
	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"github.com/dalemusser/statcard/internal/app/system/tracing"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// It boots the template engine, builds the card handler around the shared
// chart registry and mounts the feature routers: home, cards and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if deps.Tracing != nil {
		r.Use(tracing.Middleware(deps.Tracing.Tracer()))
	}

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.ChartReg, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	cardCfg := statcard.Config{
		Renderer:             appCfg.ChartRenderer,
		ChartJSURL:           appCfg.ChartJSURL,
		FontURL:              appCfg.FontStylesheetURL,
		DefaultBackgroundURL: appCfg.DefaultBackgroundURL,
		Interactive:          appCfg.CardInteractive,
		SVGCacheTTL:          appCfg.SVGCacheTTL,
		WriteLimit:           appCfg.WriteRateLimit,
		WriteWindow:          appCfg.WriteRateWindow,
	}
	renderer := chartengine.NewRenderer(deps.ChartRegistry, chartengine.DefaultSize)
	cardsHandler := statcard.NewHandler(deps.MongoDatabase, deps.ChartReg, renderer, cardCfg, errLog, logger)
	if deps.Tracing != nil {
		cardsHandler.Tracer = deps.Tracing.Tracer()
	}
	r.Mount("/cards", statcard.Routes(cardsHandler))

	// Sample card on the landing page
	homeHandler := homefeature.NewHandler(cardsHandler, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
