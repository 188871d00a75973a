package player

import (
	"testing"

	"github.com/jhodges10/tlRender/rationaltime"
)

func fullRange100at24() rationaltime.TimeRange {
	return rationaltime.NewTimeRange(rationaltime.New(0, 24), rationaltime.New(100, 24))
}

func TestLoopTimeOnceClampsAndStops(t *testing.T) {
	r := fullRange100at24()
	// S1: one more tick past the inclusive end clamps and forces Stop.
	candidate := rationaltime.New(100, 24) // one frame past end_inclusive (99/24)
	got, playback, wrapped := LoopTime(candidate, r, Once, Forward)

	if !got.Equal(r.EndTimeInclusive()) {
		t.Fatalf("clamped time = %v, want end_inclusive %v", got, r.EndTimeInclusive())
	}
	if playback != Stop {
		t.Fatalf("playback = %v, want Stop", playback)
	}
	if !wrapped {
		t.Fatal("expected wrapped=true on clamp")
	}
}

func TestLoopTimeOnceWithinRangeIsUnchanged(t *testing.T) {
	r := fullRange100at24()
	got, playback, wrapped := LoopTime(rationaltime.New(50, 24), r, Once, Forward)
	if !got.Equal(rationaltime.New(50, 24)) || playback != Forward || wrapped {
		t.Fatalf("unexpected result: %v %v %v", got, playback, wrapped)
	}
}

func TestLoopTimeLoopWrapsAround(t *testing.T) {
	r := fullRange100at24()
	got, _, wrapped := LoopTime(rationaltime.New(100, 24), r, Loop, Forward)
	if !got.Equal(r.StartTime) || !wrapped {
		t.Fatalf("expected wrap to start, got %v wrapped=%v", got, wrapped)
	}

	got, _, wrapped = LoopTime(rationaltime.New(-1, 24), r, Loop, Reverse)
	if !got.Equal(r.EndTimeInclusive()) || !wrapped {
		t.Fatalf("expected wrap to end_inclusive, got %v wrapped=%v", got, wrapped)
	}
}

func TestLoopTimePingPongFlipsAtBoundaries(t *testing.T) {
	// S2: in_out=[10/24,20/24], PingPong, Forward at current=20/24.
	r := rationaltime.NewTimeRange(rationaltime.New(10, 24), rationaltime.New(11, 24))
	got, playback, wrapped := LoopTime(rationaltime.New(21, 24), r, PingPong, Forward)
	if playback != Reverse {
		t.Fatalf("playback = %v, want Reverse", playback)
	}
	if !got.Equal(r.EndTimeInclusive()) || !wrapped {
		t.Fatalf("expected clamp to end_inclusive with wrap, got %v wrapped=%v", got, wrapped)
	}
}

func TestLoopTimePingPongFlipsBackToForward(t *testing.T) {
	r := rationaltime.NewTimeRange(rationaltime.New(10, 24), rationaltime.New(11, 24))
	got, playback, wrapped := LoopTime(rationaltime.New(9, 24), r, PingPong, Reverse)
	if playback != Forward {
		t.Fatalf("playback = %v, want Forward", playback)
	}
	if !got.Equal(r.StartTime) || !wrapped {
		t.Fatalf("expected clamp to start with wrap, got %v wrapped=%v", got, wrapped)
	}
}
