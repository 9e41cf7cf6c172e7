package chartengine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrControllerMissing means the doughnut controller was never registered.
	ErrControllerMissing = errors.New("chartengine: doughnut controller not registered")
	// ErrEmptyDataset means there is nothing with a positive value to draw.
	ErrEmptyDataset = errors.New("chartengine: dataset has no positive values")
	// ErrBadColor is returned for colour tokens that cannot be parsed.
	ErrBadColor = errors.New("chartengine: unrecognised colour")
	// ErrBadCutout is returned for cutouts outside [0, 1) of the radius.
	ErrBadCutout = errors.New("chartengine: invalid cutout")
)

// DefaultSize is the square canvas size in pixels used when none is given.
const DefaultSize = 256

// transparent must not be the zero Color, which go-chart treats as "unset".
var transparent = drawing.Color{R: 255, G: 255, B: 255, A: 0}

// Renderer draws doughnut charts as SVG.
type Renderer struct {
	engine Lookup
	size   int
}

// NewRenderer returns a renderer bound to the given registry. A size of zero
// or less selects DefaultSize.
func NewRenderer(engine Lookup, size int) *Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Renderer{engine: engine, size: size}
}

// DefaultCutout is the hole's share of the radius when Options.Cutout is empty.
const DefaultCutout = 0.5

// maxArc keeps every SVG arc command well under a half turn, so a slice
// that covers the whole ring still has distinct endpoints.
const maxArc = math.Pi / 2

// slice is one positive value with its resolved colour.
type slice struct {
	value float64
	color drawing.Color
}

// Render writes the first dataset of data as an SVG ring. Each slice is a
// stroked arc between the cutout and the outer radius; the hole is left
// unpainted so whatever sits behind the chart shows through.
func (r *Renderer) Render(w io.Writer, data Data, opts Options) error {
	if r.engine == nil || !r.engine.Has(DoughnutController.Kind, DoughnutController.ID) {
		return ErrControllerMissing
	}
	if len(data.Datasets) == 0 {
		return ErrEmptyDataset
	}
	ds := data.Datasets[0]

	var (
		slices []slice
		total  float64
	)
	for i, v := range ds.Data {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		fill := transparent
		if i < len(ds.BackgroundColor) {
			c, err := ParseColor(ds.BackgroundColor[i])
			if err != nil {
				return err
			}
			fill = c
		}
		slices = append(slices, slice{value: v, color: fill})
		total += v
	}
	if len(slices) == 0 {
		return ErrEmptyDataset
	}

	outer := float64(r.size) / 2
	cutout, err := ParseCutout(opts.Cutout, outer)
	if err != nil {
		return err
	}
	// The SVG writer truncates stroke widths, so keep whole pixels.
	width := math.Max(1, math.Round(outer*(1-cutout)))
	mid := outer - width/2
	gap := float64(borderWidth(ds, opts)) / mid

	rr, err := chart.SVG(r.size, r.size)
	if err != nil {
		return fmt.Errorf("chartengine: render doughnut: %w", err)
	}
	c := r.size / 2

	var offset float64
	for _, s := range slices {
		sweep := 2 * math.Pi * s.value / total
		if len(slices) > 1 && gap < sweep {
			sweep -= gap
		}
		for _, a := range splitArc(offset, sweep) {
			rr.ResetStyle()
			rr.SetStrokeColor(s.color)
			rr.SetStrokeWidth(width)
			// ArcTo measures from three o'clock; shift so the ring starts at the top.
			rr.ArcTo(c, c, mid, mid, math.Mod(a[0]+1.5*math.Pi, 2*math.Pi), a[1])
			rr.Stroke()
		}
		offset += 2 * math.Pi * s.value / total
	}

	if err := rr.Save(w); err != nil {
		return fmt.Errorf("chartengine: render doughnut: %w", err)
	}
	return nil
}

// splitArc cuts a sweep starting at start into pieces no longer than maxArc.
func splitArc(start, sweep float64) [][2]float64 {
	n := int(math.Ceil(sweep / maxArc))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{start + float64(i)*step, step}
	}
	return out
}

// ParseCutout turns a cutout option into the hole's share of radius.
// "87%" is a percentage; a bare number is a pixel radius. Empty selects
// DefaultCutout.
func ParseCutout(s string, radius float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCutout, nil
	}
	var frac float64
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadCutout, s)
		}
		frac = v / 100
	} else {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || radius <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadCutout, s)
		}
		frac = v / radius
	}
	if math.IsNaN(frac) || frac < 0 || frac >= 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadCutout, s)
	}
	return frac, nil
}

// ParseColor accepts "rgba(r, g, b, a)", "rgb(r, g, b)" and "#rrggbb".
// Alpha is a fraction between 0 and 1.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return drawing.Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return drawing.ColorFromHex(s[1:]), nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseComponents(s, s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseComponents(s, s[len("rgb("):len(s)-1], 3)
	}
	return drawing.Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

func parseComponents(orig, body string, want int) (drawing.Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != want {
		return drawing.Color{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return drawing.Color{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
		}
		rgb[i] = uint8(n)
	}
	alpha := uint8(255)
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return drawing.Color{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
		}
		alpha = uint8(math.Round(a * 255))
	}
	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}
