// internal/app/features/statcard/sample.go
package statcard

// DefaultBackgroundURL is used when no background is configured.
const DefaultBackgroundURL = "https://dev-p2p-synergy.s3.ap-south-1.amazonaws.com/chartbgimage+3.svg"

// DefaultLabels fill in when a caller gives no labels.
func DefaultLabels() []string {
	return []string{"New RFQs", "Ordered", "Quoted RFQs", "Order Lost", "Declined RFQs", "Cancelled"}
}

// DefaultValues fill in when a caller gives no values.
func DefaultValues() []*float64 {
	return []*float64{Float(282), Float(132), Float(124), Float(233), Float(156), Float(160)}
}

// SampleProps is the demo card shown on the home page.
func SampleProps(backgroundURL string) Props {
	if backgroundURL == "" {
		backgroundURL = DefaultBackgroundURL
	}
	return Props{
		Title: "Summary of RFQs",
		Labels: []string{
			"New RFQs",
			"Acknowledged RFQs",
			"Ordered",
			"Quoted RFQs",
			"Acknowledged RFQs",
			"Cancelled",
		},
		Values:        DefaultValues(),
		Highlight:     Highlight{Label: "# Invoice", Sum: 747},
		BackgroundURL: backgroundURL,
	}
}

// WithDefaults fills absent labels and values with the default sample set.
// An explicitly empty list is kept as given.
func (p Props) WithDefaults() Props {
	if p.Labels == nil {
		p.Labels = DefaultLabels()
	}
	if p.Values == nil {
		p.Values = DefaultValues()
	}
	return p
}
