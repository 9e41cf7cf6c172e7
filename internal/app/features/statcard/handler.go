// internal/app/features/statcard/handler.go
package statcard

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/statcard/internal/app/features/errors"
	cardstore "github.com/dalemusser/statcard/internal/app/store/cards"
	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"github.com/dalemusser/statcard/internal/app/system/ratelimit"
	"github.com/dalemusser/statcard/internal/app/system/tracing"
	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Renderer names accepted in Config.Renderer.
const (
	RendererSVG     = "svg"
	RendererChartJS = "chartjs"
)

// Config holds the presentation settings for the feature.
type Config struct {
	Renderer             string // "svg" draws the ring on the server, "chartjs" in the browser
	ChartJSURL           string // script URL used when Renderer is "chartjs"
	FontURL              string // stylesheet link injected into full pages
	DefaultBackgroundURL string // used when a card has no background
	Interactive          bool   // default pointer pass-through toggle for preview cards
	SVGCacheTTL          time.Duration
	WriteLimit           int           // create/delete requests per client per WriteWindow; 0 disables
	WriteWindow          time.Duration // defaults to one minute
}

// Handler is the shared dependency container for the stat card feature.
type Handler struct {
	Cards  *cardstore.Store
	Reg    *Registration
	Engine *chartengine.Renderer
	Cfg    Config
	Writes *ratelimit.Limiter // nil when writes are not limited

	svg    *cache.Cache
	Tracer trace.Tracer
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a new Handler.
func NewHandler(db *mongo.Database, reg *Registration, engine *chartengine.Renderer, cfg Config, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if cfg.Renderer == "" {
		cfg.Renderer = RendererSVG
	}
	if cfg.SVGCacheTTL <= 0 {
		cfg.SVGCacheTTL = 10 * time.Minute
	}
	h := &Handler{
		Reg:    reg,
		Engine: engine,
		Cfg:    cfg,
		svg:    cache.New(cfg.SVGCacheTTL, 2*cfg.SVGCacheTTL),
		Tracer: noop.NewTracerProvider().Tracer("statcard"),
		Log:    logger,
		ErrLog: errLog,
	}
	if db != nil {
		h.Cards = cardstore.New(db)
	}
	if cfg.WriteLimit > 0 {
		if cfg.WriteWindow <= 0 {
			h.Cfg.WriteWindow = time.Minute
		}
		h.Writes = ratelimit.New(cfg.WriteLimit, h.Cfg.WriteWindow)
	}
	return h
}

// cardView is the data handed to the fragment template.
type cardView struct {
	Card
	ClientRender bool
}

// pageView wraps one card in a stand-alone page.
type pageView struct {
	cardView
	PageTitle  string
	FontURL    string
	ChartJSURL string
}

// mount prepares a card for display. It is the one place that makes sure
// the doughnut capability is registered before anything is drawn.
func (h *Handler) mount(ctx context.Context, p Props) (Card, error) {
	ctx, span := h.Tracer.Start(ctx, tracing.SpanMount,
		trace.WithAttributes(attribute.String(tracing.AttrRendererName, h.Cfg.Renderer)))
	defer span.End()

	h.Reg.Ensure()

	if p.BackgroundURL == "" {
		p.BackgroundURL = h.Cfg.DefaultBackgroundURL
	}
	card, err := BuildCard(p)
	if err != nil {
		return Card{}, err
	}
	if h.Cfg.Renderer == RendererSVG {
		if svg, err := h.ringSVG(ctx, p.Series()); err == nil {
			card.SVG = template.HTML(svg)
		} else {
			h.Log.Debug("stat card ring left blank", zap.Error(err))
		}
	}
	return card, nil
}

// ringSVG draws the ring for s, caching by the shaped chart data.
func (h *Handler) ringSVG(ctx context.Context, s Series) ([]byte, error) {
	_, span := h.Tracer.Start(ctx, tracing.SpanRing,
		trace.WithAttributes(attribute.Int(tracing.AttrSlices, len(s))))
	defer span.End()

	h.Reg.Ensure()

	data, opts := ChartData(s), ChartOptions()
	key, err := json.Marshal(chartengine.Config{Data: data, Options: opts})
	if err != nil {
		return nil, err
	}
	if v, ok := h.svg.Get(string(key)); ok {
		span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, true))
		return v.([]byte), nil
	}
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, false))

	var buf bytes.Buffer
	if err := h.Engine.Render(&buf, data, opts); err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := buf.Bytes()
	h.svg.SetDefault(string(key), out)
	return out, nil
}

func (h *Handler) view(card Card) cardView {
	return cardView{Card: card, ClientRender: h.Cfg.Renderer == RendererChartJS}
}

func (h *Handler) page(card Card) pageView {
	pv := pageView{
		cardView:  h.view(card),
		PageTitle: card.Title,
		FontURL:   h.Cfg.FontURL,
	}
	if pv.ClientRender {
		pv.ChartJSURL = h.Cfg.ChartJSURL
	}
	return pv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(svg)
}
