// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS, body limits).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Card presentation
	ChartRenderer        string // "svg" (server-drawn ring) or "chartjs" (browser)
	ChartJSURL           string // chart.js script URL for the browser renderer
	FontStylesheetURL    string // stylesheet link injected into card pages
	DefaultBackgroundURL string // background used when a card has none
	CardInteractive      bool   // default pointer pass-through toggle for previews
	SVGCacheTTL          time.Duration

	// Write throttling for POST/DELETE /cards
	WriteRateLimit  int
	WriteRateWindow time.Duration

	// Tracing
	TracingEnabled    bool
	TracingExporter   string // "none" or "stdout"
	TracingSampleRate float64
}
