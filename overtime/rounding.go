package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	quarterHour  = decimal.New(25, -2)
	quarterWidth = 15 * time.Minute
)

// maxDuration is what time.Time.Sub returns when the difference overflows.
const maxDuration time.Duration = 1<<63 - 1

// RoundQuarter converts d to hours rounded to the nearest quarter hour, ties
// rounding up. Rounding happens on integer nanoseconds. Non-positive
// durations give zero.
func RoundQuarter(d time.Duration) decimal.Decimal {
	if d <= 0 {
		return decimal.Zero
	}
	quarters := int64(d / quarterWidth)
	if rem := d % quarterWidth; 2*rem >= quarterWidth {
		quarters++
	}
	return decimal.NewFromInt(quarters).Mul(quarterHour)
}

// roundBetween rounds the length of [from, to] like RoundQuarter. Spans too
// long for a time.Duration are measured in whole seconds.
func roundBetween(from, to time.Time) decimal.Decimal {
	if d := to.Sub(from); d < maxDuration {
		return RoundQuarter(d)
	}
	secs := decimal.NewFromInt(to.Unix() - from.Unix())
	return secs.Div(decimal.NewFromInt(int64(quarterWidth / time.Second))).Round(0).Mul(quarterHour)
}
