package date

import (
	"fmt"
	"strings"
)

// Period is the granularity of a price series.
type Period int

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

const (
	Daily Period = iota
	Weekly
	Monthly
)

// ParsePeriod parses a period name, long or short form.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "daily", "day", "1d":
		return Daily, nil
	case "weekly", "week", "1wk":
		return Weekly, nil
	case "monthly", "month", "1mo":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}

// MarshalText encodes the period by its name.
func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes a period name.
func (p *Period) UnmarshalText(text []byte) (err error) {
	*p, err = ParsePeriod(string(text))
	return err
}
