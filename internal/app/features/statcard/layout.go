// internal/app/features/statcard/layout.go
package statcard

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ContainerWidth is the share of the parent's width the card occupies.
const ContainerWidth = "33%"

// groupSize is the number of badges in each legend column.
const groupSize = 3

// Props are the inputs a caller supplies for one card.
type Props struct {
	Title         string
	Labels        []string
	Values        []*float64
	Highlight     Highlight
	BackgroundURL string
	// Interactive lets the card receive pointer events. When false, clicks
	// fall through to whatever is layered beneath the card.
	Interactive bool
}

// Series pairs the props' labels and values.
func (p Props) Series() Series {
	return NewSeries(p.Labels, p.Values)
}

// Badge is one legend entry: a coloured swatch holding the display value,
// next to the slice label.
type Badge struct {
	Index int
	Color string
	Value string
	Label string
}

// Card is the view model for the statcard templates.
type Card struct {
	Title          string
	HighlightLabel string
	HighlightSum   string
	BackgroundURL  string
	Width          string
	PointerEvents  string

	Left  []Badge
	Right []Badge

	CanvasID string
	Config   template.JS
	// SVG is the server-drawn ring. Empty when the engine could not draw it.
	SVG template.HTML
}

// Badges returns the fixed six legend slots. Slots past the end of the
// series, and absent values, are blank; they are never reflowed.
func Badges(s Series) (left, right []Badge) {
	all := make([]Badge, MaxSlices)
	for i := range all {
		all[i] = Badge{Index: i, Color: Palette[i]}
		sl, ok := s.At(i)
		if !ok {
			continue
		}
		if sl.HasLabel {
			all[i].Label = sl.Label
		}
		if sl.Value != nil {
			all[i].Value = NumberText(*sl.Value)
		}
	}
	return all[:groupSize], all[groupSize:]
}

// Style is the swatch's inline CSS. Colours come from Palette only.
func (b Badge) Style() template.CSS {
	return template.CSS("background-color: " + b.Color)
}

// ContainerStyle sizes the card and sets pointer pass-through.
func (c Card) ContainerStyle() template.CSS {
	return template.CSS("width: " + c.Width + "; pointer-events: " + c.PointerEvents + ";")
}

// NumberText formats v with the fewest digits that represent it exactly.
func NumberText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildCard composes the view model for p. The SVG ring is left empty; the
// handler fills it when server-side drawing is enabled.
func BuildCard(p Props) (Card, error) {
	s := p.Series()
	left, right := Badges(s)

	cfg, err := json.Marshal(ChartConfig(s))
	if err != nil {
		return Card{}, err
	}

	pointer := "none"
	if p.Interactive {
		pointer = "auto"
	}

	return Card{
		Title:          p.Title,
		HighlightLabel: p.Highlight.Label,
		HighlightSum:   NumberText(p.Highlight.Sum),
		BackgroundURL:  SafeBackgroundURL(p.BackgroundURL),
		Width:          ContainerWidth,
		PointerEvents:  pointer,
		Left:           left,
		Right:          right,
		CanvasID:       "statcard-" + uuid.NewString(),
		Config:         template.JS(cfg),
	}, nil
}

// SafeBackgroundURL keeps http(s) and site-relative URLs and blanks anything
// else, so a bad URL leaves the card without a background instead of broken.
func SafeBackgroundURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch {
	case u.Scheme == "http" || u.Scheme == "https":
		if u.Host == "" {
			return ""
		}
		return u.String()
	case u.Scheme == "" && u.Host == "" && strings.HasPrefix(u.Path, "/"):
		return u.String()
	}
	return ""
}
