package rationaltime

import "testing"

func TestEqualityAcrossRates(t *testing.T) {
	a := New(24, 24)
	b := New(48, 48)
	if !a.Equal(b) {
		t.Fatalf("expected %v == %v", a, b)
	}
}

func TestRescale(t *testing.T) {
	a := New(12, 24) // 0.5s
	got := a.Rescale(48)
	want := New(24, 48)
	if !got.Equal(want) {
		t.Fatalf("Rescale(48) = %v, want %v", got, want)
	}
}

func TestCompareOrdering(t *testing.T) {
	a := New(10, 24)
	b := New(11, 24)
	if !a.Before(b) {
		t.Fatalf("expected %v before %v", a, b)
	}
	if !b.After(a) {
		t.Fatalf("expected %v after %v", b, a)
	}
}

func TestAddSub(t *testing.T) {
	a := New(10, 24)
	oneFrame := a.OneFrame()
	got := a.Add(oneFrame).Sub(oneFrame)
	if !got.Equal(a) {
		t.Fatalf("Add then Sub one frame = %v, want %v", got, a)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []RationalTime{
		New(0, 24),
		New(100, 24),
		New(-5, 30),
		New(123.5, 23.976),
	}
	for _, rt := range cases {
		s := rt.String()
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if !got.Equal(rt) || got.Rate != rt.Rate {
			t.Fatalf("round trip mismatch: %v -> %q -> %v", rt, s, got)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse("not-a-time"); err == nil {
		t.Fatal("expected error for malformed input")
	}
}

func TestInvalidSentinel(t *testing.T) {
	if Invalid.IsValid() {
		t.Fatal("Invalid must not be valid")
	}
}
