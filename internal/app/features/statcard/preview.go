// internal/app/features/statcard/preview.go
package statcard

import (
	"net/http"
	"net/url"
	"strconv"

	uierrors "github.com/dalemusser/statcard/internal/app/features/errors"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Output formats accepted by the format query parameter.
const (
	FormatHTML     = "html"
	FormatFragment = "fragment"
	FormatJSON     = "json"
	FormatSVG      = "svg"
)

// PropsFromQuery reads card props from URL query parameters, using the
// caller-facing names: title, labels, dataValues (or values), activePrLabel,
// sumLabel, graphbgurl and interactive. Lists are comma separated; a blank
// or non-numeric entry in the values list is an absent value.
func PropsFromQuery(q url.Values) Props {
	p := Props{
		Title:         q.Get("title"),
		Labels:        SplitList(q.Get("labels")),
		BackgroundURL: q.Get("graphbgurl"),
	}

	raw := q.Get("dataValues")
	if raw == "" {
		raw = q.Get("values")
	}
	if items := SplitList(raw); items != nil {
		p.Values = make([]*float64, len(items))
		for i, s := range items {
			p.Values[i] = ParseValue(s)
		}
	}

	p.Highlight.Label = q.Get("activePrLabel")
	if sum := ParseValue(q.Get("sumLabel")); sum != nil {
		p.Highlight.Sum = *sum
	}
	if b, err := strconv.ParseBool(q.Get("interactive")); err == nil {
		p.Interactive = b
	}
	return p.WithDefaults()
}

// ServePreview renders a card straight from query parameters.
//
// GET /cards/preview?title=…&labels=a,b&dataValues=1,,3&activePrLabel=…&sumLabel=…&graphbgurl=…&format=html|fragment|json|svg
func (h *Handler) ServePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := PropsFromQuery(q)
	if q.Get("interactive") == "" {
		p.Interactive = h.Cfg.Interactive
	}
	h.serveCard(w, r, p, q.Get("format"))
}

// serveCard writes p in the requested format.
func (h *Handler) serveCard(w http.ResponseWriter, r *http.Request, p Props, format string) {
	switch format {
	case "", FormatHTML, FormatFragment:
	case FormatJSON:
		h.Reg.Ensure()
		writeJSON(w, http.StatusOK, ChartConfig(p.Series()))
		return
	case FormatSVG:
		svg, err := h.ringSVG(r.Context(), p.Series())
		if err != nil {
			h.Log.Debug("stat card ring left blank", zap.Error(err))
			svg = []byte(blankSVG)
		}
		writeSVG(w, svg)
		return
	default:
		uierrors.WriteJSON(w, http.StatusBadRequest, "unknown format "+strconv.Quote(format))
		return
	}

	card, err := h.mount(r.Context(), p)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "stat card build failed", err, "The card could not be displayed.", "/")
		return
	}

	if format == FormatFragment {
		templates.RenderSnippet(w, "statcard_fragment", h.view(card))
		return
	}
	templates.Render(w, r, "statcard_page", h.page(card))
}

const blankSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256"></svg>`

// RenderProps writes a card for p in the given format. Other features use it
// to embed cards without going through the query-string props.
func (h *Handler) RenderProps(w http.ResponseWriter, r *http.Request, p Props, format string) {
	h.serveCard(w, r, p, format)
}
