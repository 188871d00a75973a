package rationaltime

import "sort"

// ToRanges converts a set of RationalTimes (all at the same rate) into the
// minimal list of contiguous inclusive TimeRanges whose union equals the
// input set. Input does not need to be pre-sorted or de-duplicated.
func ToRanges(times []RationalTime) []TimeRange {
	if len(times) == 0 {
		return nil
	}

	sorted := make([]RationalTime, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	rate := sorted[0].Rate
	oneFrame := RationalTime{Value: 1, Rate: rate}

	var ranges []TimeRange
	runStart := sorted[0]
	runEnd := sorted[0]
	for i := 1; i < len(sorted); i++ {
		t := sorted[i]
		if t.Equal(runEnd) {
			continue // duplicate
		}
		if t.Equal(runEnd.Add(oneFrame)) {
			runEnd = t
			continue
		}
		ranges = append(ranges, closedRange(runStart, runEnd, oneFrame))
		runStart = t
		runEnd = t
	}
	ranges = append(ranges, closedRange(runStart, runEnd, oneFrame))
	return ranges
}

func closedRange(start, end, oneFrame RationalTime) TimeRange {
	duration := end.Sub(start).Add(oneFrame)
	return TimeRange{StartTime: start, Duration: duration}
}

// CacheKeys flattens the cached frame keys of a map into a slice suitable
// for ToRanges; kept here (rather than in player) since it's a pure
// RationalTime-only helper with no cache-type dependency.
func CacheKeys[V any](cache map[RationalTime]V) []RationalTime {
	keys := make([]RationalTime, 0, len(cache))
	for k := range cache {
		keys = append(keys, k)
	}
	return keys
}
