// internal/app/features/statcard/series.go
package statcard

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxSlices is the number of palette colours and badge slots.
const MaxSlices = 6

// Slice is one labelled count. Value is nil when the caller supplied no
// usable number for this index.
type Slice struct {
	Label    string
	HasLabel bool
	Value    *float64
}

// Series is an ordered list of at most MaxSlices slices. Order decides slice
// position, colour and badge slot.
type Series []Slice

// NewSeries pairs labels and values by index. The longer input decides the
// length; anything past MaxSlices is dropped.
func NewSeries(labels []string, values []*float64) Series {
	n := max(len(labels), len(values))
	if n > MaxSlices {
		n = MaxSlices
	}
	s := make(Series, n)
	for i := range s {
		if i < len(labels) {
			s[i].Label = labels[i]
			s[i].HasLabel = true
		}
		if i < len(values) && values[i] != nil {
			v := *values[i]
			s[i].Value = &v
		}
	}
	return s
}

// At returns the slice at i, or false when i is past the end of the series.
func (s Series) At(i int) (Slice, bool) {
	if i < 0 || i >= len(s) {
		return Slice{}, false
	}
	return s[i], true
}

// Labels returns the label of every slice, blank where none was given.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, sl := range s {
		out[i] = sl.Label
	}
	return out
}

// ZeroFilled returns the slice values with absent entries replaced by 0.
// This is the geometry handed to the chart engine only.
func (s Series) ZeroFilled() []float64 {
	out := make([]float64, len(s))
	for i, sl := range s {
		if sl.Value != nil {
			out[i] = *sl.Value
		}
	}
	return out
}

// Values returns the original optional values.
func (s Series) Values() []*float64 {
	out := make([]*float64, len(s))
	for i, sl := range s {
		if sl.Value != nil {
			v := *sl.Value
			out[i] = &v
		}
	}
	return out
}

// ParseValue converts a loosely typed input into an optional number.
// Anything that is not a finite number becomes absent.
func ParseValue(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case *float64:
		if x == nil {
			return nil
		}
		f = *x
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return nil
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = p
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseValues applies ParseValue to each element.
func ParseValues(in []any) []*float64 {
	out := make([]*float64, len(in))
	for i, v := range in {
		out[i] = ParseValue(v)
	}
	return out
}

// SplitList splits a comma separated query value. An empty string yields nil
// so callers can tell "not given" from "one blank entry".
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
