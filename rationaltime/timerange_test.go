package rationaltime

import "testing"

func TestTimeRangeEndTimes(t *testing.T) {
	r := NewTimeRange(New(0, 24), New(10, 24))
	if !r.EndTimeExclusive().Equal(New(10, 24)) {
		t.Fatalf("EndTimeExclusive = %v", r.EndTimeExclusive())
	}
	if !r.EndTimeInclusive().Equal(New(9, 24)) {
		t.Fatalf("EndTimeInclusive = %v", r.EndTimeInclusive())
	}
}

func TestTimeRangeContains(t *testing.T) {
	r := NewTimeRange(New(0, 24), New(10, 24))
	if !r.Contains(New(9, 24)) {
		t.Fatal("expected range to contain its last inclusive frame")
	}
	if r.Contains(New(10, 24)) {
		t.Fatal("expected range to exclude end_time_exclusive")
	}
}

func TestTimeRangeIntersects(t *testing.T) {
	a := NewTimeRange(New(0, 24), New(10, 24))
	b := NewTimeRange(New(9, 24), New(10, 24))
	c := NewTimeRange(New(20, 24), New(10, 24))
	if !a.Intersects(b) {
		t.Fatal("expected overlapping ranges to intersect")
	}
	if a.Intersects(c) {
		t.Fatal("expected disjoint ranges to not intersect")
	}
}

func TestTimeRangeClamped(t *testing.T) {
	r := NewTimeRange(New(10, 24), New(10, 24)) // [10,19]
	if got := r.Clamped(New(5, 24)); !got.Equal(New(10, 24)) {
		t.Fatalf("Clamped underflow = %v", got)
	}
	if got := r.Clamped(New(25, 24)); !got.Equal(New(19, 24)) {
		t.Fatalf("Clamped overflow = %v", got)
	}
	if got := r.Clamped(New(15, 24)); !got.Equal(New(15, 24)) {
		t.Fatalf("Clamped inside = %v", got)
	}
}

func TestTimeRangeStringRoundTrip(t *testing.T) {
	r := NewTimeRange(New(10, 24), New(5, 24))
	s := r.String()
	got, err := ParseTimeRange(s)
	if err != nil {
		t.Fatalf("ParseTimeRange(%q) error: %v", s, err)
	}
	if !got.StartTime.Equal(r.StartTime) || !got.Duration.Equal(r.Duration) {
		t.Fatalf("round trip mismatch: %v -> %q -> %v", r, s, got)
	}
}
