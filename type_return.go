package pricedash

import (
	"fmt"
	"math"
)

// Return is a return fraction: 0.1 is a 10% gain, -0.5 a 50% loss.
type Return float64

// Percent returns r expressed in percent.
func (r Return) Percent() float64 { return 100 * float64(r) }

// String formats r as a percentage with one decimal, e.g. "12.3%".
func (r Return) String() string { return fmt.Sprintf("%.1f%%", r.Percent()) }

// Trend classifies r.
func (r Return) Trend() Trend { return TrendOf(float64(r)) }

// Equal compares two returns with some precision.
func (r Return) Equal(q Return) bool {
	const precision = 0.000001
	return math.Abs(float64(r-q)) < precision
}

// Trend is the three-way classification of a value against zero.
type Trend int

const (
	Neutral Trend = iota
	Positive
	Negative
	Undefined // not a number, used for returns that cannot be computed.
)

// TrendOf returns Positive if v > 0, Negative if v < 0, Neutral if v == 0.
func TrendOf(v float64) Trend {
	switch {
	case math.IsNaN(v):
		return Undefined
	case v > 0:
		return Positive
	case v < 0:
		return Negative
	default:
		return Neutral
	}
}

func (t Trend) String() string {
	switch t {
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Undefined:
		return "undefined"
	default:
		panic(fmt.Sprintf("unknown trend %d", t))
	}
}

func (t Trend) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
