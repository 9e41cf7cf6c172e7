package chartengine_test

import (
	"bytes"
	"errors"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func sampleData() chartengine.Data {
	return chartengine.Data{
		Labels: []string{"A", "B", "C"},
		Datasets: []chartengine.Dataset{{
			Data:            []float64{3, 0, 5},
			BackgroundColor: []string{"rgba(149, 189, 255, 1)", "#f8e5a4", "rgb(247, 200, 224)"},
		}},
	}
}

func TestRender_RequiresDoughnutController(t *testing.T) {
	reg := chartengine.NewRegistry()
	r := chartengine.NewRenderer(reg, 0)

	var buf bytes.Buffer
	err := r.Render(&buf, sampleData(), chartengine.Options{})
	if !errors.Is(err, chartengine.ErrControllerMissing) {
		t.Fatalf("expected ErrControllerMissing, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written when the controller is missing")
	}
}

func TestRender_NilEngine(t *testing.T) {
	r := chartengine.NewRenderer(nil, 0)
	err := r.Render(&bytes.Buffer{}, sampleData(), chartengine.Options{})
	if !errors.Is(err, chartengine.ErrControllerMissing) {
		t.Fatalf("expected ErrControllerMissing, got %v", err)
	}
}

func TestRender_SVG(t *testing.T) {
	reg := chartengine.NewRegistry()
	_ = reg.AddControllers(chartengine.DoughnutController)
	r := chartengine.NewRenderer(reg, 128)

	var buf bytes.Buffer
	if err := r.Render(&buf, sampleData(), chartengine.Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("expected SVG output, got %q", buf.String())
	}
}

func TestRender_EmptyDataset(t *testing.T) {
	reg := chartengine.NewRegistry()
	_ = reg.AddControllers(chartengine.DoughnutController)
	r := chartengine.NewRenderer(reg, 0)

	tests := []struct {
		name string
		data chartengine.Data
	}{
		{"no datasets", chartengine.Data{}},
		{"all zero", chartengine.Data{Datasets: []chartengine.Dataset{{Data: []float64{0, 0}}}}},
		{"negative", chartengine.Data{Datasets: []chartengine.Dataset{{Data: []float64{-4}}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Render(&bytes.Buffer{}, tc.data, chartengine.Options{})
			if !errors.Is(err, chartengine.ErrEmptyDataset) {
				t.Errorf("expected ErrEmptyDataset, got %v", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want drawing.Color
	}{
		{"rgba(149, 189, 255, 1)", drawing.Color{R: 149, G: 189, B: 255, A: 255}},
		{"rgba(0,0,0,0)", drawing.Color{}},
		{"RGB(10, 20, 30)", drawing.Color{R: 10, G: 20, B: 30, A: 255}},
		{"rgba(255, 192, 179, 0.5)", drawing.Color{R: 255, G: 192, B: 179, A: 128}},
	}
	for _, tc := range tests {
		got, err := chartengine.ParseColor(tc.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q): got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "blue", "rgba(1,2,3)", "rgb(300, 0, 0)", "rgba(1,2,3,2)", "#abc"} {
		if _, err := chartengine.ParseColor(in); !errors.Is(err, chartengine.ErrBadColor) {
			t.Errorf("ParseColor(%q): expected ErrBadColor, got %v", in, err)
		}
	}
}

var strokeRe = regexp.MustCompile(`stroke:(rgba\([^)]*\))`)

func strokes(svg string) []string {
	var out []string
	for _, m := range strokeRe.FindAllStringSubmatch(svg, -1) {
		out = append(out, m[1])
	}
	return out
}

func renderRing(t *testing.T, data chartengine.Data, opts chartengine.Options) string {
	t.Helper()
	reg := chartengine.NewRegistry()
	_ = reg.AddControllers(chartengine.DoughnutController)
	var buf bytes.Buffer
	if err := chartengine.NewRenderer(reg, 200).Render(&buf, data, opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRender_SingleSliceKeepsItsColor(t *testing.T) {
	out := renderRing(t, chartengine.Data{
		Labels: []string{"A", "B"},
		Datasets: []chartengine.Dataset{{
			Data:            []float64{0, 5},
			BackgroundColor: []string{"rgba(149, 189, 255, 1)", "rgba(248, 229, 164, 1)"},
		}},
	}, chartengine.Options{Cutout: "87%"})

	got := strokes(out)
	if len(got) == 0 {
		t.Fatalf("no stroked arcs in %q", out)
	}
	for _, c := range got {
		if c != "rgba(248,229,164,1.0)" {
			t.Errorf("single slice drawn with %s, want the second palette colour", c)
		}
	}
}

func TestRender_SlicesInOrder(t *testing.T) {
	out := renderRing(t, sampleData(), chartengine.Options{})

	var distinct []string
	for _, c := range strokes(out) {
		if len(distinct) == 0 || distinct[len(distinct)-1] != c {
			distinct = append(distinct, c)
		}
	}
	want := []string{"rgba(149,189,255,1.0)", "rgba(247,200,224,1.0)"}
	if strings.Join(distinct, " ") != strings.Join(want, " ") {
		t.Errorf("stroke order: got %v, want %v", distinct, want)
	}
}

func TestRender_CutoutLeavesHoleUnpainted(t *testing.T) {
	out := renderRing(t, sampleData(), chartengine.Options{Cutout: "87%"})

	// 200px canvas: outer radius 100, hole radius 87.
	if !strings.Contains(out, "stroke-width:13") {
		t.Errorf("expected a 13px ring, got %q", out)
	}
	if strings.Contains(out, "<circle") {
		t.Error("no centre disc should be drawn")
	}
	if n, paths := strings.Count(out, "fill:none"), strings.Count(out, "<path"); n != paths {
		t.Errorf("%d of %d paths are filled; arcs must be stroke only", paths-n, paths)
	}
}

func TestParseCutout(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", chartengine.DefaultCutout},
		{"87%", 0.87},
		{" 50 % ", 0.5},
		{"25", 0.25},
		{"0%", 0},
	}
	for _, tc := range tests {
		got, err := chartengine.ParseCutout(tc.in, 100)
		if err != nil {
			t.Errorf("ParseCutout(%q): %v", tc.in, err)
			continue
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ParseCutout(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"abc", "100%", "-5%", "150"} {
		if _, err := chartengine.ParseCutout(in, 100); !errors.Is(err, chartengine.ErrBadCutout) {
			t.Errorf("ParseCutout(%q): expected ErrBadCutout, got %v", in, err)
		}
	}
}
