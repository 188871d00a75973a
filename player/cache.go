package player

import (
	"github.com/jhodges10/tlRender/compose"
	"github.com/jhodges10/tlRender/ioplugin"
	"github.com/jhodges10/tlRender/rationaltime"
)

// frameCache is the exact, player-owned cache of composed Frames plus the
// pending composer futures keyed by time. It is touched only from the
// tick thread (spec §5 "Frame cache: owned exclusively by the player's
// tick thread; no external access").
type frameCache struct {
	frames  map[rationaltime.RationalTime]*compose.Frame
	pending map[rationaltime.RationalTime]*ioplugin.Future[*compose.Frame]
}

func newFrameCache() *frameCache {
	return &frameCache{
		frames:  make(map[rationaltime.RationalTime]*compose.Frame),
		pending: make(map[rationaltime.RationalTime]*ioplugin.Future[*compose.Frame]),
	}
}

// windowTimes computes W (spec §4.5 step 1): starting from current, step
// readBehind frames backward and readBehind+readAhead frames forward,
// wrapping loop-aware within inOutRange.
func windowTimes(current rationaltime.RationalTime, inOutRange rationaltime.TimeRange, mode LoopMode, readBehind, readAhead int) []rationaltime.RationalTime {
	rate := current.Rate
	oneFrame := rationaltime.New(1, rate)

	start := current
	for i := 0; i < readBehind; i++ {
		start, _, _ = LoopTime(start.Sub(oneFrame), inOutRange, mode, Reverse)
	}

	total := readBehind + readAhead + 1
	times := make([]rationaltime.RationalTime, 0, total)
	t := start
	for i := 0; i < total; i++ {
		times = append(times, t)
		t, _, _ = LoopTime(t.Add(oneFrame), inOutRange, mode, Forward)
	}
	return times
}

// evict drops cached frames whose time is outside every range of
// to_ranges(W) (spec §4.5 step 2).
func (c *frameCache) evict(ranges []rationaltime.TimeRange) {
	for t := range c.frames {
		if !inAnyRange(t, ranges) {
			delete(c.frames, t)
		}
	}
}

func inAnyRange(t rationaltime.RationalTime, ranges []rationaltime.TimeRange) bool {
	for _, r := range ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

// submitMissing dispatches a composer request for every t in W that is
// neither cached nor already pending (spec §4.5 step 3).
func (c *frameCache) submitMissing(w []rationaltime.RationalTime, composer *compose.Composer) {
	for _, t := range w {
		if _, cached := c.frames[t]; cached {
			continue
		}
		if _, pending := c.pending[t]; pending {
			continue
		}
		c.pending[t] = composer.RequestFrame(t)
	}
}

// drainReady polls every pending future non-blockingly and moves ready
// results into the cache (spec §4.5 step 4).
func (c *frameCache) drainReady() {
	for t, fut := range c.pending {
		frame, err, ready := fut.Peek()
		if !ready {
			continue
		}
		delete(c.pending, t)
		if err != nil || frame == nil {
			continue
		}
		c.frames[t] = frame
	}
}

// cancelPending discards every pending future without waiting (used by
// Seek to invalidate stale requests; spec §4.5 "Seek(t)").
func (c *frameCache) cancelPending() {
	for t := range c.pending {
		delete(c.pending, t)
	}
}

func (c *frameCache) keys() []rationaltime.RationalTime {
	return rationaltime.CacheKeys(c.frames)
}
