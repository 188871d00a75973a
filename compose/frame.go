// Package compose implements the frame composer: given a flattened
// timeline and a reader registry, it turns a global timeline time into a
// composited Frame by walking the video tracks bottom-to-top, reading the
// clip(s) active at that time, and resolving transitions/time warps.
package compose

import (
	"github.com/jhodges10/tlRender/pixel"
	"github.com/jhodges10/tlRender/rationaltime"
	"github.com/jhodges10/tlRender/timeline"
)

// FrameLayer is one track's contribution to a composed Frame: a primary
// image, an optional second image during a transition, the transition
// kind, and the transition's progress value in [0,1].
type FrameLayer struct {
	ImageA          *pixel.Image // nil if the clip's media is unresolvable (spec §7 OpenError / S5)
	ImageB          *pixel.Image // non-nil only during a Dissolve
	Transition      timeline.TransitionKind
	TransitionValue float64
}

// Frame is the composited result for a single global timeline time:
// layers are ordered bottom-to-top matching track stacking order.
type Frame struct {
	Time   rationaltime.RationalTime
	Layers []FrameLayer
}
