// internal/app/features/statcard/routes.go
package statcard

import (
	"net/http"

	uierrors "github.com/dalemusser/statcard/internal/app/features/errors"
	"github.com/dalemusser/statcard/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the stat card feature, mounted at /cards.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Stateless render from query props
	r.Get("/preview", h.ServePreview)

	// Stored cards
	writes := r.With(h.writeLimit)
	r.Get("/", h.ServeList)
	writes.Post("/", h.ServeCreate)
	r.Route("/{id}", func(cr chi.Router) {
		cr.Get("/", h.ServeCard)
		cr.Get("/fragment", h.ServeFragment)
		cr.Get("/chart.json", h.ServeChartJSON)
		cr.Get("/donut.svg", h.ServeSVG)
		cr.With(h.writeLimit).Delete("/", h.ServeDelete)
	})

	return r
}

// writeLimit throttles create and delete per client when configured.
func (h *Handler) writeLimit(next http.Handler) http.Handler {
	if h.Writes == nil {
		return next
	}
	return ratelimit.Middleware(h.Writes, func(w http.ResponseWriter, r *http.Request) {
		uierrors.WriteJSON(w, http.StatusTooManyRequests, "Too many changes. Please wait a minute and try again.")
	})(next)
}
