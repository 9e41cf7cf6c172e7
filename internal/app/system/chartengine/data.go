package chartengine

// Data is the input structure handed to a chart render call. It marshals to
// the same JSON shape chart.js expects, so one value feeds both the server
// renderer and the browser.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series of values with its slice colours.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderWidth     int       `json:"borderWidth"`
}

// Options are the render options understood by the engine.
type Options struct {
	Plugins  Plugins  `json:"plugins"`
	Cutout   string   `json:"cutout"`
	Elements Elements `json:"elements"`
	Hover    Hover    `json:"hover"`
	Events   []string `json:"events"`
}

type Plugins struct {
	Legend  Toggle `json:"legend"`
	Tooltip Toggle `json:"tooltip"`
}

// Toggle switches a plugin on or off.
type Toggle struct {
	Display *bool `json:"display,omitempty"`
	Enabled *bool `json:"enabled,omitempty"`
}

type Elements struct {
	Arc Arc `json:"arc"`
}

type Arc struct {
	BorderWidth int `json:"borderWidth"`
}

// Hover with a nil Mode disables hover interactions.
type Hover struct {
	Mode *string `json:"mode"`
}

// Config is the full chart.js constructor argument.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}
