package filters

import (
	"fmt"
	"time"
)

// DateLayout is the wire and flag format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate reads a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// DateRange bounds the created/updated window of a search. Either end may be
// nil. When both are set Start is never after End: the setters refuse picks
// that would invert the range instead of storing an invalid state.
type DateRange struct {
	Start *Date
	End   *Date
}

// CanStart reports whether d is selectable as a start date.
func (r DateRange) CanStart(d Date) bool {
	return r.End == nil || !r.End.Before(d)
}

// CanEnd reports whether d is selectable as an end date.
func (r DateRange) CanEnd(d Date) bool {
	return r.Start == nil || !d.Before(*r.Start)
}

// WithStart returns a copy with Start set to d, or ok=false if d falls after End.
func (r DateRange) WithStart(d Date) (DateRange, bool) {
	if !r.CanStart(d) {
		return r, false
	}
	r.Start = &d
	return r, true
}

// WithEnd returns a copy with End set to d, or ok=false if d falls before Start.
func (r DateRange) WithEnd(d Date) (DateRange, bool) {
	if !r.CanEnd(d) {
		return r, false
	}
	r.End = &d
	return r, true
}

// ClearStart drops the lower bound.
func (r DateRange) ClearStart() DateRange {
	r.Start = nil
	return r
}

// ClearEnd drops the upper bound.
func (r DateRange) ClearEnd() DateRange {
	r.End = nil
	return r
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}
