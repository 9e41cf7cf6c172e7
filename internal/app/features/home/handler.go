package home

import (
	"net/http"

	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Cards *statcard.Handler
	Log   *zap.Logger
}

func NewHandler(cards *statcard.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		Cards: cards,
		Log:   logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – sample card                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	p := statcard.SampleProps(h.Cards.Cfg.DefaultBackgroundURL)
	h.Cards.RenderProps(w, r, p, r.URL.Query().Get("format"))
}
