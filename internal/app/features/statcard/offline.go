// internal/app/features/statcard/offline.go
package statcard

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"
)

// standalone parses the card templates without the web template engine, for
// rendering outside a request.
var standalone = sync.OnceValues(func() (*template.Template, error) {
	return template.ParseFS(FS, "templates/*.gohtml")
})

// Write renders p to w in the given format without an HTTP request.
// The fragment and html formats use the same templates as the web handlers.
func (h *Handler) Write(ctx context.Context, w io.Writer, p Props, format string) error {
	switch format {
	case FormatJSON:
		h.Reg.Ensure()
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ChartConfig(p.Series()))
	case FormatSVG:
		svg, err := h.ringSVG(ctx, p.Series())
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	case FormatFragment, FormatHTML, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	tmpl, err := standalone()
	if err != nil {
		return fmt.Errorf("parse card templates: %w", err)
	}
	card, err := h.mount(ctx, p)
	if err != nil {
		return err
	}
	if format == FormatFragment {
		return tmpl.ExecuteTemplate(w, "statcard_fragment", h.view(card))
	}
	return tmpl.ExecuteTemplate(w, "statcard_page", h.page(card))
}
