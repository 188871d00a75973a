// Package timeline holds the immutable, parser-produced timeline tree:
// Timeline, Stack, Track, Clip, Gap, Transition, MediaReference and
// LinearTimeWarp, plus the arena/handle identity scheme readers are keyed
// by (spec §9 "Object-identity keys").
package timeline

import "github.com/jhodges10/tlRender/rationaltime"

// TrackKind distinguishes video from audio tracks. Only video tracks are
// composited by this engine (spec §1 Non-goals excludes audio mixing).
type TrackKind uint8

const (
	TrackVideo TrackKind = iota
	TrackAudio
)

// TransitionKind is the only transition operator this engine recognizes
// beyond "no transition".
type TransitionKind uint8

const (
	TransitionNone TransitionKind = iota
	TransitionDissolve
)

// ParseTransitionKind maps the on-disk transition type string to a
// TransitionKind. Only "SMPTE_Dissolve" maps to TransitionDissolve; every
// other value (including unknown/empty) maps to TransitionNone, per spec §6.
func ParseTransitionKind(s string) TransitionKind {
	if s == "SMPTE_Dissolve" {
		return TransitionDissolve
	}
	return TransitionNone
}

// Metadata is an inert string-keyed bag carried on Timeline, Track and Clip
// nodes (Stack, Gap and Transition carry none) so that
// round-tripping through external tooling (the out-of-scope parser) does
// not lose arbitrary producer metadata. Recovered from
// original_source/lib/tlrCore/Timeline.cpp; spec.md's distillation omits
// it but does not forbid it.
type Metadata map[string]any

// LinearTimeWarp scales clip-local time by a constant factor; 1.0 is the
// identity warp.
type LinearTimeWarp struct {
	TimeScalar float64
}

// Effect is an opaque clip effect. Only LinearTimeWarp is interpreted by
// the composer (spec §9 Open Question: only clip-level warps are honored);
// other effect kinds are preserved on the tree but not evaluated.
type Effect struct {
	Warp *LinearTimeWarp // non-nil iff this effect is a LinearTimeWarp
	Kind string          // opaque kind name for unrecognized effects
}

// MediaReference identifies where a Clip's samples come from: exactly one
// of ExternalReference or ImageSequenceReference is non-nil.
type MediaReference struct {
	External *ExternalReference
	Sequence *ImageSequenceReference
}

// TargetURL returns the resolvable path/URL for this reference, regardless
// of which concrete kind it is. Returns "" for an unresolvable/empty
// reference (spec §7 OpenError / S5 "missing media" scenario).
func (m MediaReference) TargetURL() string {
	switch {
	case m.External != nil:
		return m.External.TargetURL
	case m.Sequence != nil:
		return m.Sequence.FirstFramePath()
	default:
		return ""
	}
}

// ExternalReference points at a single media file (a movie, or any
// single-file format the registry recognizes).
type ExternalReference struct {
	TargetURL string
}

// ImageSequenceReference describes a numbered-image-sequence: a directory,
// filename prefix/suffix, zero-padding width and starting frame number.
type ImageSequenceReference struct {
	Base       string // directory
	Prefix     string // filename prefix before the number
	Padding    int    // zero-pad width; 0 means no padding
	StartFrame int
	Suffix     string // extension, including leading dot
}

// FirstFramePath synthesizes the path of this sequence's first frame,
// matching spec §6's filename synthesis rule.
func (s ImageSequenceReference) FirstFramePath() string {
	return SynthesizePath(s.Base, s.Prefix, s.Padding, s.StartFrame, s.Suffix)
}

// Clip is a leaf node referencing a range of a MediaReference.
type Clip struct {
	handle           Handle
	Name             string
	MediaReference   MediaReference
	TrimmedRange     rationaltime.TimeRange // range in the media's own time
	Effects          []Effect
	Metadata         Metadata
	trimmedInParent  rationaltime.TimeRange
	parentTrack      *Track
}

// Handle returns this clip's stable arena identity, used to key readers.
func (c *Clip) Handle() Handle { return c.handle }

// TrimmedRangeInParent is this clip's projection into its track's time.
func (c *Clip) TrimmedRangeInParent() rationaltime.TimeRange { return c.trimmedInParent }

// ParentTrack returns the track this clip belongs to.
func (c *Clip) ParentTrack() *Track { return c.parentTrack }

// TimeWarpScalar composes every LinearTimeWarp effect on this clip by
// multiplication; a clip with no time-warp effects returns 1.0 (identity).
func (c *Clip) TimeWarpScalar() float64 {
	scalar := 1.0
	for _, e := range c.Effects {
		if e.Warp != nil {
			scalar *= e.Warp.TimeScalar
		}
	}
	return scalar
}

// Gap is a track child occupying time with no media.
type Gap struct {
	handle          Handle
	Duration        rationaltime.RationalTime
	trimmedInParent rationaltime.TimeRange
	parentTrack     *Track
}

func (g *Gap) Handle() Handle                                  { return g.handle }
func (g *Gap) TrimmedRangeInParent() rationaltime.TimeRange    { return g.trimmedInParent }
func (g *Gap) ParentTrack() *Track                             { return g.parentTrack }

// Transition sits between two adjacent clips in one track.
type Transition struct {
	Kind      TransitionKind
	InOffset  rationaltime.RationalTime // overlap into the tail of the first clip
	OutOffset rationaltime.RationalTime // overlap into the head of the second clip
}

// TrackChild is implemented by Clip, Gap and Transition.
type TrackChild interface {
	isTrackChild()
}

func (*Clip) isTrackChild()       {}
func (*Gap) isTrackChild()        {}
func (*Transition) isTrackChild() {}

// Track is an ordered sequence of clips, gaps and transitions.
type Track struct {
	handle   Handle
	Kind     TrackKind
	Name     string
	Children []TrackChild
	Metadata Metadata
}

func (t *Track) Handle() Handle { return t.handle }

// Range returns the track's total span starting at time zero at the
// timeline's rate.
func (t *Track) Range(rate float64) rationaltime.TimeRange {
	start := rationaltime.New(0, rate)
	dur := rationaltime.New(0, rate)
	for _, child := range t.Children {
		switch c := child.(type) {
		case *Clip:
			dur = dur.Add(c.TrimmedRange.Duration.Rescale(rate))
		case *Gap:
			dur = dur.Add(c.Duration.Rescale(rate))
		}
	}
	return rationaltime.NewTimeRange(start, dur)
}

// Stack is an ordered collection of tracks composited bottom-to-top.
type Stack struct {
	handle Handle
	Tracks []*Track
}

func (s *Stack) Handle() Handle { return s.handle }

// Timeline is the root of the tree: a global start time, overall
// duration, and a single root Stack.
type Timeline struct {
	arena           *Arena
	GlobalStartTime rationaltime.RationalTime
	Duration        rationaltime.RationalTime
	Root            *Stack
	Metadata        Metadata
}

// Rate is the timeline's display rate (spec §3: duration.rate).
func (tl *Timeline) Rate() float64 { return tl.Duration.Rate }

// GlobalRange is [global_start_time, global_start_time+duration).
func (tl *Timeline) GlobalRange() rationaltime.TimeRange {
	return rationaltime.NewTimeRange(tl.GlobalStartTime, tl.Duration)
}

// Arena returns the identity arena backing this timeline's handles.
func (tl *Timeline) Arena() *Arena { return tl.arena }
