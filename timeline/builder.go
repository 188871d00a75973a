package timeline

import "github.com/jhodges10/tlRender/rationaltime"

// Builder assembles a Timeline tree programmatically. The on-disk/textual
// timeline description format is out of scope (spec §1); callers that do
// parse one should build the tree through this API, which also computes
// each Clip/Gap's TrimmedRangeInParent and wires parent-track pointers.
type Builder struct {
	arena *Arena
	tl    *Timeline
}

// NewTimeline starts a Builder for a new Timeline with the given global
// start time and duration (duration.rate is the timeline's display rate).
func NewTimeline(globalStart, duration rationaltime.RationalTime) *Builder {
	arena := NewArena()
	return &Builder{
		arena: arena,
		tl: &Timeline{
			arena:           arena,
			GlobalStartTime: globalStart,
			Duration:        duration,
			Root:            &Stack{handle: arena.Alloc()},
			Metadata:        Metadata{},
		},
	}
}

// Build finalizes and returns the Timeline.
func (b *Builder) Build() *Timeline { return b.tl }

// AddTrack appends a new, empty Track to the root Stack and returns a
// TrackBuilder for populating it.
func (b *Builder) AddTrack(kind TrackKind, name string) *TrackBuilder {
	track := &Track{handle: b.arena.Alloc(), Kind: kind, Name: name, Metadata: Metadata{}}
	b.tl.Root.Tracks = append(b.tl.Root.Tracks, track)
	rate := b.tl.Duration.Rate
	return &TrackBuilder{arena: b.arena, track: track, rate: rate, cursor: rationaltime.New(0, rate)}
}

// TrackBuilder appends children to a Track, tracking the running
// in-parent time cursor.
type TrackBuilder struct {
	arena  *Arena
	track  *Track
	rate   float64
	cursor rationaltime.RationalTime
}

func (tb *TrackBuilder) advance(d rationaltime.RationalTime) rationaltime.TimeRange {
	start := tb.cursor
	r := rationaltime.NewTimeRange(start, d.Rescale(tb.rate))
	tb.cursor = r.EndTimeExclusive()
	return r
}

// AddClip appends a Clip sampling trimmedRange of mediaRef, with the given
// effects, and returns it.
func (tb *TrackBuilder) AddClip(mediaRef MediaReference, trimmedRange rationaltime.TimeRange, effects []Effect) *Clip {
	clip := &Clip{
		handle:         tb.arena.Alloc(),
		MediaReference: mediaRef,
		TrimmedRange:   trimmedRange,
		Effects:        effects,
		Metadata:       Metadata{},
		parentTrack:    tb.track,
	}
	clip.trimmedInParent = tb.advance(trimmedRange.Duration)
	tb.track.Children = append(tb.track.Children, clip)
	return clip
}

// AddGap appends a Gap of the given duration.
func (tb *TrackBuilder) AddGap(duration rationaltime.RationalTime) *Gap {
	gap := &Gap{handle: tb.arena.Alloc(), Duration: duration, parentTrack: tb.track}
	gap.trimmedInParent = tb.advance(duration)
	tb.track.Children = append(tb.track.Children, gap)
	return gap
}

// AddTransition appends a Transition between the previously added clip and
// the one that will be added next. It does not itself consume track time
// (transitions overlap the adjacent clips, per spec §3).
func (tb *TrackBuilder) AddTransition(kind TransitionKind, inOffset, outOffset rationaltime.RationalTime) *Transition {
	tr := &Transition{Kind: kind, InOffset: inOffset, OutOffset: outOffset}
	tb.track.Children = append(tb.track.Children, tr)
	return tr
}

// Track returns the Track being built.
func (tb *TrackBuilder) Track() *Track { return tb.track }
