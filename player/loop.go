package player

import "github.com/jhodges10/tlRender/rationaltime"

// LoopTime applies loop semantics to a candidate time t against
// inOutRange, per spec §4.5. It is a pure function (spec §9's
// recommendation) so the boundary scenarios (S1, S2) can be tested without
// standing up a whole Player.
//
// It returns the normalized time, the playback direction to use from this
// point on (unchanged unless PingPong flips it or Once forces Stop), and
// whether a wrap/clamp occurred (the caller resets its wallclock anchors
// when true).
func LoopTime(t rationaltime.RationalTime, inOutRange rationaltime.TimeRange, mode LoopMode, playback Playback) (rationaltime.RationalTime, Playback, bool) {
	a := inOutRange.StartTime
	b := inOutRange.EndTimeInclusive()

	switch mode {
	case Loop:
		if t.Before(a) {
			return b, playback, true
		}
		if t.After(b) {
			return a, playback, true
		}
		return t, playback, false

	case Once:
		if t.Before(a) {
			return a, Stop, true
		}
		if t.After(b) {
			return b, Stop, true
		}
		return t, playback, false

	case PingPong:
		if t.Before(a) && playback == Reverse {
			return a, Forward, true
		}
		if t.After(b) && playback == Forward {
			return b, Reverse, true
		}
		return inOutRange.Clamped(t), playback, false

	default:
		return t, playback, false
	}
}
