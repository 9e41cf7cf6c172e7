// internal/app/features/statcard/adapter.go
package statcard

import (
	"github.com/dalemusser/statcard/internal/app/system/chartengine"
)

// Palette holds the slice colours; slice i is always drawn with Palette[i].
var Palette = [MaxSlices]string{
	"rgba(149, 189, 255, 1)",
	"rgba(248, 229, 164, 1)",
	"rgba(247, 200, 224, 1)",
	"rgba(140, 242, 242, 1)",
	"rgba(255, 192, 179, 1)",
	"rgba(223, 255, 216, 1)",
}

// DatasetLabel is the label of the single dataset handed to the engine.
const DatasetLabel = "# of Votes"

// Cutout leaves a thin ring so the highlight text fits in the centre.
const Cutout = "87%"

// Highlight is the label and sum shown inside the cutout. It is supplied by
// the caller and never derived from the series.
type Highlight struct {
	Label string
	Sum   float64
}

// ChartData shapes a series into the engine's input structure. Absent values
// become 0 here so the ring always has a defined total.
func ChartData(s Series) chartengine.Data {
	colors := make([]string, len(Palette))
	copy(colors, Palette[:])

	return chartengine.Data{
		Labels: s.Labels(),
		Datasets: []chartengine.Dataset{{
			Label:           DatasetLabel,
			Data:            s.ZeroFilled(),
			BackgroundColor: colors,
			BorderWidth:     0,
		}},
	}
}

// ChartOptions returns the fixed render options: no legend, thin ring, no
// arc borders, no hover or tooltip interaction.
func ChartOptions() chartengine.Options {
	off := false
	return chartengine.Options{
		Plugins: chartengine.Plugins{
			Legend:  chartengine.Toggle{Display: &off},
			Tooltip: chartengine.Toggle{Enabled: &off},
		},
		Cutout:   Cutout,
		Elements: chartengine.Elements{Arc: chartengine.Arc{BorderWidth: 0}},
		Hover:    chartengine.Hover{Mode: nil},
		Events:   []string{},
	}
}

// ChartConfig bundles data and options for the browser renderer.
func ChartConfig(s Series) chartengine.Config {
	return chartengine.Config{
		Type:    chartengine.DoughnutController.ID,
		Data:    ChartData(s),
		Options: ChartOptions(),
	}
}
