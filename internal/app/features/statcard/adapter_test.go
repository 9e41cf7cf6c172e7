package statcard_test

import (
	"testing"

	"github.com/dalemusser/statcard/internal/app/features/statcard"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func vals(in ...any) []*float64 {
	out := make([]*float64, len(in))
	for i, v := range in {
		out[i] = statcard.ParseValue(v)
	}
	return out
}

func TestChartData_FullSeries(t *testing.T) {
	s := statcard.NewSeries(
		[]string{"New RFQs", "Acknowledged", "Ordered", "Quoted", "Acked2", "Cancelled"},
		vals(282, 132, 124, 233, 156, 160),
	)
	data := statcard.ChartData(s)

	if len(data.Datasets) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(data.Datasets))
	}
	ds := data.Datasets[0]
	if diff := cmp.Diff([]float64{282, 132, 124, 233, 156, 160}, ds.Data); diff != "" {
		t.Errorf("dataset data mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(statcard.Palette[:], ds.BackgroundColor); diff != "" {
		t.Errorf("colours mismatch (-want +got):\n%s", diff)
	}
	if ds.Label != statcard.DatasetLabel {
		t.Errorf("dataset label: got %q", ds.Label)
	}
	if ds.BorderWidth != 0 {
		t.Errorf("border width: got %d, want 0", ds.BorderWidth)
	}
	if data.Labels[2] != "Ordered" {
		t.Errorf("label 2: got %q", data.Labels[2])
	}
}

func TestChartData_AbsentValueZeroFilled(t *testing.T) {
	s := statcard.NewSeries([]string{"A", "B"}, vals(nil, 5))
	data := statcard.ChartData(s)

	if diff := cmp.Diff([]float64{0, 5}, data.Datasets[0].Data); diff != "" {
		t.Errorf("dataset data mismatch (-want +got):\n%s", diff)
	}
	// Display keeps the absent value.
	if got := s.Values()[0]; got != nil {
		t.Errorf("series value 0 should stay absent, got %v", *got)
	}
}

func TestChartData_DoesNotAliasPalette(t *testing.T) {
	data := statcard.ChartData(statcard.NewSeries([]string{"A"}, vals(1)))
	data.Datasets[0].BackgroundColor[0] = "red"
	if statcard.Palette[0] == "red" {
		t.Fatal("ChartData must copy the palette")
	}
}

func TestChartOptions(t *testing.T) {
	opts := statcard.ChartOptions()

	if opts.Plugins.Legend.Display == nil || *opts.Plugins.Legend.Display {
		t.Error("legend should be hidden")
	}
	if opts.Plugins.Tooltip.Enabled == nil || *opts.Plugins.Tooltip.Enabled {
		t.Error("tooltip should be disabled")
	}
	if opts.Cutout != "87%" {
		t.Errorf("cutout: got %q, want 87%%", opts.Cutout)
	}
	if opts.Elements.Arc.BorderWidth != 0 {
		t.Errorf("arc border: got %d, want 0", opts.Elements.Arc.BorderWidth)
	}
	if opts.Hover.Mode != nil {
		t.Errorf("hover mode should be null, got %q", *opts.Hover.Mode)
	}
	if opts.Events == nil || len(opts.Events) != 0 {
		t.Errorf("events should be an empty list, got %#v", opts.Events)
	}
}

func TestChartConfig_Type(t *testing.T) {
	cfg := statcard.ChartConfig(statcard.NewSeries(nil, nil))
	if cfg.Type != "doughnut" {
		t.Errorf("type: got %q, want doughnut", cfg.Type)
	}
}

// genSeriesInput draws labels and optional values of independent lengths.
func genSeriesInput(t *rapid.T) ([]string, []*float64) {
	labels := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z ]{0,12}`), 0, 9).Draw(t, "labels")
	values := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) *float64 {
		if rapid.Bool().Draw(t, "absent") {
			return nil
		}
		v := rapid.Float64Range(0, 1e6).Draw(t, "value")
		return &v
	}), 0, 9).Draw(t, "values")
	return labels, values
}

func TestProperty_DatasetMatchesSeries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		labels, values := genSeriesInput(t)
		s := statcard.NewSeries(labels, values)
		data := statcard.ChartData(s)

		if len(s) > statcard.MaxSlices {
			t.Fatalf("series longer than %d: %d", statcard.MaxSlices, len(s))
		}
		got := data.Datasets[0].Data
		if len(got) != len(s) {
			t.Fatalf("dataset length %d, series length %d", len(got), len(s))
		}
		for i, sl := range s {
			if sl.Value == nil && got[i] != 0 {
				t.Fatalf("index %d: absent value drawn as %v", i, got[i])
			}
			if sl.Value != nil && got[i] != *sl.Value {
				t.Fatalf("index %d: got %v, want %v", i, got[i], *sl.Value)
			}
		}
	})
}

func TestProperty_BadgesFixedSlots(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		labels, values := genSeriesInput(t)
		s := statcard.NewSeries(labels, values)
		left, right := statcard.Badges(s)

		if len(left) != 3 || len(right) != 3 {
			t.Fatalf("badge groups: got %d/%d, want 3/3", len(left), len(right))
		}
		all := append(append([]statcard.Badge{}, left...), right...)
		for i, b := range all {
			if b.Index != i {
				t.Fatalf("badge %d has index %d", i, b.Index)
			}
			if b.Color != statcard.Palette[i] {
				t.Fatalf("badge %d colour %q, want %q", i, b.Color, statcard.Palette[i])
			}
			sl, ok := s.At(i)
			if !ok {
				if b.Value != "" || b.Label != "" {
					t.Fatalf("badge %d past the series should be blank, got %+v", i, b)
				}
				continue
			}
			if sl.Value == nil && b.Value != "" {
				t.Fatalf("badge %d: absent value shown as %q", i, b.Value)
			}
			if sl.Value != nil && b.Value != statcard.NumberText(*sl.Value) {
				t.Fatalf("badge %d: got %q, want %q", i, b.Value, statcard.NumberText(*sl.Value))
			}
			if b.Label != sl.Label {
				t.Fatalf("badge %d: label %q, want %q", i, b.Label, sl.Label)
			}
		}
	})
}
