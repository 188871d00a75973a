package timeline

import (
	"testing"

	"github.com/jhodges10/tlRender/rationaltime"
)

func buildSimpleTimeline(t *testing.T) (*Timeline, *Clip) {
	t.Helper()
	b := NewTimeline(rationaltime.New(0, 24), rationaltime.New(100, 24))
	tb := b.AddTrack(TrackVideo, "V1")
	ref := MediaReference{External: &ExternalReference{TargetURL: "/media/a.mov"}}
	clip := tb.AddClip(ref, rationaltime.NewTimeRange(rationaltime.New(0, 24), rationaltime.New(50, 24)), nil)
	return b.Build(), clip
}

func TestBuilderAssignsDistinctHandles(t *testing.T) {
	tl, clip := buildSimpleTimeline(t)
	track := tl.Root.Tracks[0]
	if clip.Handle() == track.Handle() {
		t.Fatal("expected clip and track to have distinct handles")
	}
	if clip.Handle() == tl.Root.Handle() {
		t.Fatal("expected clip and stack to have distinct handles")
	}
}

func TestClipTrimmedRangeInParent(t *testing.T) {
	_, clip := buildSimpleTimeline(t)
	want := rationaltime.NewTimeRange(rationaltime.New(0, 24), rationaltime.New(50, 24))
	got := clip.TrimmedRangeInParent()
	if !got.StartTime.Equal(want.StartTime) || !got.Duration.Equal(want.Duration) {
		t.Fatalf("TrimmedRangeInParent = %v, want %v", got, want)
	}
}

func TestTrackBuilderAdvancesCursor(t *testing.T) {
	b := NewTimeline(rationaltime.New(0, 24), rationaltime.New(100, 24))
	tb := b.AddTrack(TrackVideo, "V1")
	ref := MediaReference{External: &ExternalReference{TargetURL: "/a.mov"}}
	c1 := tb.AddClip(ref, rationaltime.NewTimeRange(rationaltime.New(0, 24), rationaltime.New(10, 24)), nil)
	c2 := tb.AddClip(ref, rationaltime.NewTimeRange(rationaltime.New(10, 24), rationaltime.New(10, 24)), nil)

	if !c1.TrimmedRangeInParent().EndTimeExclusive().Equal(c2.TrimmedRangeInParent().StartTime) {
		t.Fatalf("expected c2 to start where c1 ends: c1 end=%v c2 start=%v",
			c1.TrimmedRangeInParent().EndTimeExclusive(), c2.TrimmedRangeInParent().StartTime)
	}
}

func TestTimeWarpScalarComposesMultiplicatively(t *testing.T) {
	clip := &Clip{Effects: []Effect{
		{Warp: &LinearTimeWarp{TimeScalar: 2.0}},
		{Warp: &LinearTimeWarp{TimeScalar: 0.5}},
		{Kind: "ColorCorrect"}, // non-warp effect, ignored
	}}
	if got := clip.TimeWarpScalar(); got != 1.0 {
		t.Fatalf("TimeWarpScalar = %v, want 1.0", got)
	}
}

func TestTimeWarpScalarIdentityWithNoEffects(t *testing.T) {
	clip := &Clip{}
	if got := clip.TimeWarpScalar(); got != 1.0 {
		t.Fatalf("TimeWarpScalar = %v, want 1.0", got)
	}
}

func TestParseTransitionKind(t *testing.T) {
	if ParseTransitionKind("SMPTE_Dissolve") != TransitionDissolve {
		t.Fatal("expected SMPTE_Dissolve to map to TransitionDissolve")
	}
	if ParseTransitionKind("SMPTE_Wipe") != TransitionNone {
		t.Fatal("expected unrecognized transition type to map to TransitionNone")
	}
	if ParseTransitionKind("") != TransitionNone {
		t.Fatal("expected empty transition type to map to TransitionNone")
	}
}

func TestMediaReferenceTargetURL(t *testing.T) {
	ext := MediaReference{External: &ExternalReference{TargetURL: "/x.mov"}}
	if ext.TargetURL() != "/x.mov" {
		t.Fatalf("TargetURL = %q", ext.TargetURL())
	}

	seq := MediaReference{Sequence: &ImageSequenceReference{Base: "/seq", Prefix: "b_", Padding: 4, StartFrame: 1, Suffix: ".png"}}
	if want := "/seq/b_0001.png"; seq.TargetURL() != want {
		t.Fatalf("TargetURL = %q, want %q", seq.TargetURL(), want)
	}

	empty := MediaReference{}
	if empty.TargetURL() != "" {
		t.Fatalf("expected empty TargetURL for unresolved reference, got %q", empty.TargetURL())
	}
}
