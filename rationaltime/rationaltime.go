// Package rationaltime provides exact-enough rational time arithmetic for
// the timeline engine: a (value, rate) pair plus a contiguous time range
// built on top of it.
package rationaltime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhodges10/tlRender/perrors"
)

// RationalTime is a value at a rate (frames per second, fractional rates
// allowed). Two RationalTimes compare equal when their values in a common
// rate match, not when their (value, rate) pairs are identical.
type RationalTime struct {
	Value float64
	Rate  float64
}

// Invalid is the sentinel RationalTime. IsValid reports false for it and
// for any other RationalTime with a non-positive or NaN rate.
var Invalid = RationalTime{Value: math.NaN(), Rate: 0}

// New builds a RationalTime, matching tlRender's (value, rate) constructor.
func New(value, rate float64) RationalTime {
	return RationalTime{Value: value, Rate: rate}
}

// IsValid reports whether the rate is usable for arithmetic.
func (t RationalTime) IsValid() bool {
	return t.Rate > 0 && !math.IsNaN(t.Rate) && !math.IsNaN(t.Value)
}

// Seconds returns the time in seconds.
func (t RationalTime) Seconds() float64 {
	if t.Rate == 0 {
		return 0
	}
	return t.Value / t.Rate
}

// Rescale returns the equivalent RationalTime at rate, rounding to the
// nearest integer frame value (round-half-away-from-zero), matching the
// tlRender original's rescaled_to rounding rule.
func (t RationalTime) Rescale(rate float64) RationalTime {
	if t.Rate == rate || rate <= 0 {
		return RationalTime{Value: t.Value, Rate: rate}
	}
	seconds := t.Seconds()
	scaled := seconds * rate
	return RationalTime{Value: roundHalfAwayFromZero(scaled), Rate: rate}
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}
	return math.Ceil(v - 0.5)
}

// valueAt returns this time's value expressed at rate without rounding,
// used internally for comparisons/arithmetic across differing rates.
func (t RationalTime) valueAt(rate float64) float64 {
	if t.Rate == rate || rate <= 0 {
		return t.Value
	}
	return t.Seconds() * rate
}

// Compare returns -1, 0 or 1 comparing t to other, rescaling to a common
// rate first when the rates differ.
func (t RationalTime) Compare(other RationalTime) int {
	rate := t.Rate
	if rate == 0 {
		rate = other.Rate
	}
	a := t.valueAt(rate)
	b := other.valueAt(rate)
	const epsilon = 1e-6
	switch {
	case math.Abs(a-b) <= epsilon:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// Equal reports numeric equality, rescaling as needed.
func (t RationalTime) Equal(other RationalTime) bool { return t.Compare(other) == 0 }

// Before reports whether t occurs strictly before other.
func (t RationalTime) Before(other RationalTime) bool { return t.Compare(other) < 0 }

// After reports whether t occurs strictly after other.
func (t RationalTime) After(other RationalTime) bool { return t.Compare(other) > 0 }

// Add returns t + other, keeping t's rate (other is rescaled first if
// its rate differs).
func (t RationalTime) Add(other RationalTime) RationalTime {
	if other.Rate != t.Rate && other.Rate != 0 && t.Rate != 0 {
		other = other.Rescale(t.Rate)
	}
	return RationalTime{Value: t.Value + other.Value, Rate: t.Rate}
}

// Sub returns t - other, keeping t's rate.
func (t RationalTime) Sub(other RationalTime) RationalTime {
	if other.Rate != t.Rate && other.Rate != 0 && t.Rate != 0 {
		other = other.Rescale(t.Rate)
	}
	return RationalTime{Value: t.Value - other.Value, Rate: t.Rate}
}

// Scaled returns the time with its value multiplied by scalar (used for
// LinearTimeWarp application).
func (t RationalTime) Scaled(scalar float64) RationalTime {
	return RationalTime{Value: t.Value * scalar, Rate: t.Rate}
}

// OneFrame returns the duration of a single frame at t's rate.
func (t RationalTime) OneFrame() RationalTime {
	return RationalTime{Value: 1, Rate: t.Rate}
}

// String formats as "value/rate", matching the tlRender stream operator.
func (t RationalTime) String() string {
	return fmt.Sprintf("%v/%v", t.Value, t.Rate)
}

// Parse parses the "value/rate" format produced by String, the inverse of
// String (round-trip law: Parse(t.String()) == t).
func Parse(s string) (RationalTime, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Invalid, perrors.NewParseError("rationaltime.Parse", fmt.Errorf("expected value/rate, got %q", s))
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Invalid, perrors.NewParseError("rationaltime.Parse", err)
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Invalid, perrors.NewParseError("rationaltime.Parse", err)
	}
	return RationalTime{Value: value, Rate: rate}, nil
}
