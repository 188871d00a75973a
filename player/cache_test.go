package player

import (
	"testing"

	"github.com/jhodges10/tlRender/rationaltime"
)

func TestWindowTimesS6Bounds(t *testing.T) {
	// S6: read_ahead=3, read_behind=1, current_time=t, loop=Loop, no seeking.
	inOut := rationaltime.NewTimeRange(rationaltime.New(0, 24), rationaltime.New(100, 24))
	current := rationaltime.New(50, 24)

	w := windowTimes(current, inOut, Loop, 1, 3)

	allowed := map[rationaltime.RationalTime]bool{
		rationaltime.New(49, 24): true,
		rationaltime.New(50, 24): true,
		rationaltime.New(51, 24): true,
		rationaltime.New(52, 24): true,
		rationaltime.New(53, 24): true,
	}
	if len(w) != 5 {
		t.Fatalf("expected 5 window times, got %d: %v", len(w), w)
	}
	for _, wt := range w {
		found := false
		for at := range allowed {
			if wt.Equal(at) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("window time %v outside allowed set {t-1..t+3}", wt)
		}
	}
}

func TestFrameCacheEvictsOutsideRanges(t *testing.T) {
	c := newFrameCache()
	c.frames[rationaltime.New(5, 24)] = nil
	c.frames[rationaltime.New(50, 24)] = nil

	ranges := []rationaltime.TimeRange{
		rationaltime.NewTimeRange(rationaltime.New(48, 24), rationaltime.New(5, 24)),
	}
	c.evict(ranges)

	if _, ok := c.frames[rationaltime.New(5, 24)]; ok {
		t.Fatal("expected time 5/24 to be evicted")
	}
	if _, ok := c.frames[rationaltime.New(50, 24)]; !ok {
		t.Fatal("expected time 50/24 to remain cached")
	}
}
