// internal/app/features/statcard/cards.go
package statcard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/statcard/internal/app/features/errors"
	cardstore "github.com/dalemusser/statcard/internal/app/store/cards"
	"github.com/dalemusser/statcard/internal/app/system/paging"
	"github.com/dalemusser/statcard/internal/app/system/timeouts"
	"github.com/dalemusser/statcard/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxCardBody bounds the size of a create request.
const maxCardBody = 64 << 10

// ErrInvalidCard is wrapped by every validation failure in DecodeCard.
var ErrInvalidCard = errors.New("invalid stat card")

// cardInput is the JSON body of POST /cards. Field names follow the
// widget's public props.
type cardInput struct {
	Title         string   `json:"title"`
	Labels        []string `json:"labels"`
	DataValues    []any    `json:"dataValues"`
	ActivePrLabel string   `json:"activePrLabel"`
	SumLabel      any      `json:"sumLabel"`
	GraphBgURL    string   `json:"graphbgurl"`
	Interactive   bool     `json:"interactive"`
}

// DecodeCard parses and validates a create request body. Non-numeric
// entries in dataValues are stored as absent values.
func DecodeCard(body []byte) (models.StatCard, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var in cardInput
	if err := dec.Decode(&in); err != nil {
		return models.StatCard{}, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.StatCard{}, fmt.Errorf("%w: title is required", ErrInvalidCard)
	}
	if strings.TrimSpace(in.ActivePrLabel) == "" {
		return models.StatCard{}, fmt.Errorf("%w: activePrLabel is required", ErrInvalidCard)
	}
	sum := ParseValue(in.SumLabel)
	if sum == nil {
		return models.StatCard{}, fmt.Errorf("%w: sumLabel must be a number", ErrInvalidCard)
	}
	if len(in.Labels) > MaxSlices || len(in.DataValues) > MaxSlices {
		return models.StatCard{}, fmt.Errorf("%w: at most %d labels and values", ErrInvalidCard, MaxSlices)
	}
	if in.GraphBgURL != "" && SafeBackgroundURL(in.GraphBgURL) == "" {
		return models.StatCard{}, fmt.Errorf("%w: graphbgurl must be an http(s) or site-relative URL", ErrInvalidCard)
	}

	return models.StatCard{
		Title:          in.Title,
		Labels:         in.Labels,
		Values:         ParseValues(in.DataValues),
		HighlightLabel: in.ActivePrLabel,
		HighlightSum:   *sum,
		BackgroundURL:  in.GraphBgURL,
		Interactive:    in.Interactive,
	}, nil
}

// PropsFromCard converts a stored card into render props. Stored cards
// without labels or values keep them empty rather than showing sample data.
func PropsFromCard(c models.StatCard) Props {
	labels := c.Labels
	if labels == nil {
		labels = []string{}
	}
	values := c.Values
	if values == nil {
		values = []*float64{}
	}
	return Props{
		Title:         c.Title,
		Labels:        labels,
		Values:        values,
		Highlight:     Highlight{Label: c.HighlightLabel, Sum: c.HighlightSum},
		BackgroundURL: c.BackgroundURL,
		Interactive:   c.Interactive,
	}
}

// ServeList handles GET /cards?after=…|before=…, one page at a time.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Cards.ListPage(ctx, paging.FromRequest(r))
	if err != nil {
		h.ErrLog.LogJSONError(w, r, http.StatusInternalServerError, "list stat cards failed", err, "A database error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ServeCreate handles POST /cards.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.ErrLog.LogJSONError(w, r, http.StatusRequestEntityTooLarge, "stat card body rejected", err, "Request body too large.")
		return
	}
	card, err := DecodeCard(body)
	if err != nil {
		h.ErrLog.LogJSONError(w, r, http.StatusBadRequest, "stat card rejected", err, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Cards.Create(ctx, card)
	if err != nil {
		h.ErrLog.LogJSONError(w, r, http.StatusInternalServerError, "create stat card failed", err, "A database error occurred.")
		return
	}
	w.Header().Set("Location", "/cards/"+created.ID.Hex())
	writeJSON(w, http.StatusCreated, created)
}

// ServeCard handles GET /cards/{id} and its format variants.
func (h *Handler) ServeCard(w http.ResponseWriter, r *http.Request) {
	h.serveStored(w, r, r.URL.Query().Get("format"))
}

// ServeFragment handles GET /cards/{id}/fragment.
func (h *Handler) ServeFragment(w http.ResponseWriter, r *http.Request) {
	h.serveStored(w, r, FormatFragment)
}

// ServeChartJSON handles GET /cards/{id}/chart.json.
func (h *Handler) ServeChartJSON(w http.ResponseWriter, r *http.Request) {
	h.serveStored(w, r, FormatJSON)
}

// ServeSVG handles GET /cards/{id}/donut.svg.
func (h *Handler) ServeSVG(w http.ResponseWriter, r *http.Request) {
	h.serveStored(w, r, FormatSVG)
}

// ServeDelete handles DELETE /cards/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(r)
	if !ok {
		uierrors.WriteJSON(w, http.StatusNotFound, "card not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Cards.Delete(ctx, id); err != nil {
		if errors.Is(err, cardstore.ErrNotFound) {
			uierrors.WriteJSON(w, http.StatusNotFound, "card not found")
			return
		}
		h.ErrLog.LogJSONError(w, r, http.StatusInternalServerError, "delete stat card failed", err, "A database error occurred.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) serveStored(w http.ResponseWriter, r *http.Request, format string) {
	id, ok := cardID(r)
	if !ok {
		h.notFound(w, r, format)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	card, err := h.Cards.Get(ctx, id)
	if errors.Is(err, cardstore.ErrNotFound) {
		h.notFound(w, r, format)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load stat card failed", err, "A database error occurred.", "/")
		return
	}
	h.serveCard(w, r, PropsFromCard(card), format)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, format string) {
	switch format {
	case FormatJSON, FormatSVG:
		uierrors.WriteJSON(w, http.StatusNotFound, "card not found")
	default:
		uierrors.RenderNotFound(w, r, "That card does not exist.", "/")
	}
}

func cardID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCardBody)
	return io.ReadAll(r.Body)
}
