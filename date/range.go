package date

import "fmt"

// Range represents a closed range of dates.
type Range struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// IsZero reports whether r is the zero Range.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Days returns the number of calendar days in the range, boundaries included.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/Day) + 1
}

// Clamp returns the intersection of r and bounds.
//
// If they do not overlap, the result is the degenerate range on the nearest
// bound, so that it stays within bounds.
func (r Range) Clamp(bounds Range) Range {
	r = NewRange(r.From, r.To)
	if r.From.Before(bounds.From) {
		r.From = bounds.From
	}
	if r.To.After(bounds.To) {
		r.To = bounds.To
	}
	if r.From.After(bounds.To) {
		r.From = bounds.To
	}
	if r.To.Before(bounds.From) {
		r.To = bounds.From
	}
	if r.From.After(r.To) {
		r.From = r.To
	}
	return r
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
