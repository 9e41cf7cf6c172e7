// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"github.com/dalemusser/statcard/internal/app/system/tracing"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for statcard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, chart_renderer, etc.
//   - Environment variables: STATCARD_MONGO_URI, STATCARD_CHART_RENDERER, etc.
//   - Command-line flags: --mongo_uri, --chart_renderer, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "statcard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size (default: 50)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	// Card presentation
	{Name: "chart_renderer", Default: statcard.RendererSVG, Desc: "Where the ring is drawn: 'svg' (server) or 'chartjs' (browser)"},
	{Name: "chartjs_url", Default: "https://cdn.jsdelivr.net/npm/chart.js@4/dist/chart.umd.min.js", Desc: "chart.js script URL for the browser renderer"},
	{Name: "font_stylesheet_url", Default: "https://fonts.googleapis.com/css?family=Poppins", Desc: "Font stylesheet linked from card pages"},
	{Name: "default_background_url", Default: statcard.DefaultBackgroundURL, Desc: "Card background used when none is given"},
	{Name: "card_interactive", Default: false, Desc: "Let preview cards receive pointer events"},
	{Name: "svg_cache_ttl", Default: "10m", Desc: "How long server-drawn rings are cached (e.g., 10m, 1h)"},

	// Write throttling
	{Name: "write_rate_limit", Default: 30, Desc: "Card creates/deletes allowed per client per window (0 disables)"},
	{Name: "write_rate_window", Default: "1m", Desc: "Window for write_rate_limit (e.g., 1m)"},

	// Tracing
	{Name: "tracing_enabled", Default: false, Desc: "Record OpenTelemetry spans for requests and renders"},
	{Name: "tracing_exporter", Default: tracing.ExporterNone, Desc: "Span exporter: 'none' or 'stdout'"},
	{Name: "tracing_sample_rate", Default: "1.0", Desc: "Fraction of requests traced (0-1)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, STATCARD_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STATCARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		ChartRenderer:        appValues.String("chart_renderer"),
		ChartJSURL:           appValues.String("chartjs_url"),
		FontStylesheetURL:    appValues.String("font_stylesheet_url"),
		DefaultBackgroundURL: appValues.String("default_background_url"),
		CardInteractive:      appValues.Bool("card_interactive"),
		SVGCacheTTL:          appValues.Duration("svg_cache_ttl", 10*time.Minute),

		WriteRateLimit:  appValues.Int("write_rate_limit"),
		WriteRateWindow: appValues.Duration("write_rate_window", time.Minute),

		TracingEnabled:  appValues.Bool("tracing_enabled"),
		TracingExporter: appValues.String("tracing_exporter"),
	}

	rate, err := strconv.ParseFloat(appValues.String("tracing_sample_rate"), 64)
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("tracing_sample_rate: %w", err)
	}
	appCfg.TracingSampleRate = rate

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked to catch configuration errors early,
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.ChartRenderer {
	case statcard.RendererSVG, statcard.RendererChartJS:
	default:
		return fmt.Errorf("chart_renderer must be %q or %q, got %q",
			statcard.RendererSVG, statcard.RendererChartJS, appCfg.ChartRenderer)
	}

	if appCfg.DefaultBackgroundURL != "" && statcard.SafeBackgroundURL(appCfg.DefaultBackgroundURL) == "" {
		return fmt.Errorf("default_background_url must be an http(s) or site-relative URL")
	}

	switch appCfg.TracingExporter {
	case tracing.ExporterNone, tracing.ExporterStdout:
	default:
		return fmt.Errorf("tracing_exporter must be %q or %q, got %q",
			tracing.ExporterNone, tracing.ExporterStdout, appCfg.TracingExporter)
	}
	if appCfg.TracingSampleRate < 0 || appCfg.TracingSampleRate > 1 {
		return fmt.Errorf("tracing_sample_rate must be between 0 and 1, got %v", appCfg.TracingSampleRate)
	}

	if appCfg.WriteRateLimit < 0 {
		return fmt.Errorf("write_rate_limit must not be negative, got %d", appCfg.WriteRateLimit)
	}

	return nil
}
