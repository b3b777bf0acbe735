// Package overtime classifies a worked interval into normal, double, and
// triple overtime hours.
//
// The rules, first match wins:
//
//  1. the entry date is a designated triple-OT date: the whole span is triple;
//  2. clock-in falls on a Sunday: the whole span is double;
//  3. clock-out is past the shift's nominal end: the excess is normal;
//  4. otherwise there is no overtime.
//
// Every function here is pure. Incomplete or unparsable input yields the
// all-zero Result, since callers recompute on every edit of a half-filled form.
package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft holds entry fields as typed by the user.
type Draft struct {
	Date     string `json:"date"`
	Shift    string `json:"shift"`
	ClockIn  string `json:"inTime"`
	ClockOut string `json:"outTime"`
}

// Result is the derived part of an entry. At most one of Normal, Double and
// Triple is positive.
type Result struct {
	Normal     decimal.Decimal
	Double     decimal.Decimal
	Triple     decimal.Decimal
	NightShift bool
}

// Bucket names the classification branch that produced r.
func (r Result) Bucket() string {
	switch {
	case r.Triple.IsPositive():
		return "triple"
	case r.Double.IsPositive():
		return "double"
	case r.Normal.IsPositive():
		return "normal"
	}
	return "none"
}

// Total is the sum of the three buckets.
func (r Result) Total() decimal.Decimal {
	return r.Normal.Add(r.Double).Add(r.Triple)
}

func zeroResult() Result {
	return Result{Normal: decimal.Zero, Double: decimal.Zero, Triple: decimal.Zero}
}

// Prepare parses and normalizes a draft. loc is the calendar the worker's
// dates and clock times are read in; nil means time.Local.
func Prepare(d Draft, loc *time.Location) (Span, Shift, error) {
	if loc == nil {
		loc = time.Local
	}
	shift, err := ParseShift(d.Shift)
	if err != nil {
		return Span{}, "", err
	}
	day, err := ParseDay(d.Date, loc)
	if err != nil {
		return Span{}, "", err
	}
	in, err := ParseClock(day, d.ClockIn, loc)
	if err != nil {
		return Span{}, "", err
	}
	out, err := ParseClock(day, d.ClockOut, loc)
	if err != nil {
		return Span{}, "", err
	}
	return Normalize(day, in, out), shift, nil
}

// Classify computes the overtime buckets and night-shift flag for a draft.
func Classify(d Draft, tripleDates DateSet, loc *time.Location) Result {
	span, shift, err := Prepare(d, loc)
	if err != nil {
		return zeroResult()
	}
	return ClassifySpan(span, shift, tripleDates)
}

// ClassifySpan applies the classification rules to an already normalized span.
func ClassifySpan(span Span, shift Shift, tripleDates DateSet) Result {
	res := zeroResult()
	if !span.valid() || !shift.Valid() {
		return res
	}
	res.NightShift = span.NightShift()

	switch {
	case tripleDates.Contains(span.Day):
		res.Triple = roundBetween(span.In, span.Out)
	case span.In.Weekday() == time.Sunday:
		res.Double = roundBetween(span.In, span.Out)
	default:
		if end := shift.End(span.Day); span.Out.After(end) {
			res.Normal = roundBetween(end, span.Out)
		}
	}
	return res
}
