package date

import (
	"iter"
	"slices"
)

// Value is the set of types a History can hold.
type Value interface{ float32 | float64 | string }

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T Value] struct {
	days   []Date
	values []T
}

// search returns the index of day in h, or where it would be inserted.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// Earliest returns the first date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Earliest() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, *new(T)
	}
	return h.days[0], h.values[0]
}

// Clear removes all items from the history.
func (h *History[T]) Clear() {
	h.days = h.days[:0]
	h.values = h.values[:0]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Append adds a point to the history.
//
// Existing value at that date are overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	i, found := h.search(on)
	if found {
		// higher priority to the last data
		h.values[i] = q
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Days returns the dates of the history in chronological order.
func (h *History[T]) Days() []Date { return slices.Clone(h.days) }

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
// It returns the value and true if found, otherwise it returns the zero value and false.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	// i is where day would be inserted, the last entry before is at i-1.
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Between returns a new History with the points of h that are within r.
func (h *History[T]) Between(r Range) *History[T] {
	lo, _ := h.search(r.From)
	hi, found := h.search(r.To)
	if found {
		hi++
	}
	if hi < lo {
		hi = lo
	}
	return &History[T]{
		days:   slices.Clone(h.days[lo:hi]),
		values: slices.Clone(h.values[lo:hi]),
	}
}

// Equal reports whether h and x hold the same points.
func (h *History[T]) Equal(x *History[T]) bool {
	return slices.Equal(h.days, x.days) && slices.Equal(h.values, x.values)
}
