package rationaltime

import (
	"fmt"
	"strings"

	"github.com/jhodges10/tlRender/perrors"
)

// TimeRange is a contiguous span of time: a start and a duration, both at
// the same rate. Ranges are value objects.
type TimeRange struct {
	StartTime RationalTime
	Duration  RationalTime
}

// NewTimeRange builds a TimeRange. start and duration must share a rate;
// if duration's rate differs it is rescaled to start's rate.
func NewTimeRange(start, duration RationalTime) TimeRange {
	if duration.Rate != start.Rate && start.Rate != 0 {
		duration = duration.Rescale(start.Rate)
	}
	return TimeRange{StartTime: start, Duration: duration}
}

// EndTimeExclusive is start + duration.
func (r TimeRange) EndTimeExclusive() RationalTime {
	return r.StartTime.Add(r.Duration)
}

// EndTimeInclusive is start + duration - 1/rate, the last time instant
// contained in the range.
func (r TimeRange) EndTimeInclusive() RationalTime {
	rate := r.StartTime.Rate
	return r.EndTimeExclusive().Sub(RationalTime{Value: 1, Rate: rate})
}

// Contains reports whether t lies within [start, end_inclusive].
func (r TimeRange) Contains(t RationalTime) bool {
	return !t.Before(r.StartTime) && !t.After(r.EndTimeInclusive())
}

// Intersects reports whether r and other overlap under inclusive
// end-time semantics.
func (r TimeRange) Intersects(other TimeRange) bool {
	return !r.EndTimeInclusive().Before(other.StartTime) &&
		!other.EndTimeInclusive().Before(r.StartTime)
}

// Clamped returns t clamped into [start, end_inclusive].
func (r TimeRange) Clamped(t RationalTime) RationalTime {
	if t.Before(r.StartTime) {
		return r.StartTime
	}
	if t.After(r.EndTimeInclusive()) {
		return r.EndTimeInclusive()
	}
	return t
}

// String formats as "start-duration", matching the tlRender stream
// operator (each RationalTime itself formatted as "value/rate").
func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.StartTime.String(), r.Duration.String())
}

// ParseTimeRange is the inverse of TimeRange.String.
func ParseTimeRange(s string) (TimeRange, error) {
	// The separator is the first '-' after the start's "/", so a negative
	// start value ("-5/24-10/24") is not mistaken for the separator.
	sep := -1
	if slash := strings.Index(s, "/"); slash >= 0 {
		if i := strings.Index(s[slash:], "-"); i >= 0 {
			sep = slash + i
		}
	}
	if sep < 0 {
		return TimeRange{}, perrors.NewParseError("rationaltime.ParseTimeRange", fmt.Errorf("expected start-duration, got %q", s))
	}
	start, err := Parse(s[:sep])
	if err != nil {
		return TimeRange{}, err
	}
	duration, err := Parse(s[sep+1:])
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{StartTime: start, Duration: duration}, nil
}
