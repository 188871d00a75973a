package player

import (
	"sync"
	"time"

	"github.com/jhodges10/tlRender/compose"
	"github.com/jhodges10/tlRender/observable"
	"github.com/jhodges10/tlRender/rationaltime"
	"github.com/jhodges10/tlRender/timeline"
)

// Config holds the player's tunables, defaults matching spec §9's
// suggested values.
type Config struct {
	ReadAhead  int // frame_cache_read_ahead
	ReadBehind int // frame_cache_read_behind
}

// DefaultConfig matches the teacher-adjacent packages' habit of exposing a
// documented-default constructor rather than zero-value config structs.
func DefaultConfig() Config {
	return Config{ReadAhead: 3, ReadBehind: 1}
}

// Player is the observable timeline playback state machine of spec §4.5.
// All subject mutation and cache bookkeeping happens on whichever
// goroutine calls Tick; Tick itself never blocks (it only polls composer
// futures and submits new requests).
type Player struct {
	tl       *timeline.Timeline
	composer *compose.Composer
	cfg      Config

	PlaybackSubject    *observable.ValueSubject[Playback]
	LoopSubject        *observable.ValueSubject[LoopMode]
	CurrentTimeSubject *observable.ValueSubject[rationaltime.RationalTime]
	InOutRangeSubject  *observable.ValueSubject[rationaltime.TimeRange]
	FrameSubject       *observable.ValueSubject[*compose.Frame]
	CachedFramesSubject *observable.ListSubject[rationaltime.TimeRange]

	mu                sync.Mutex
	startWallclock    time.Time
	playbackStartTime rationaltime.RationalTime
	cache             *frameCache
}

// New constructs a Player over tl, driven by composer. current_time and
// in_out_range start at the timeline's full global range (spec §4.5).
func New(tl *timeline.Timeline, composer *compose.Composer, cfg Config) *Player {
	fullRange := tl.GlobalRange()
	return &Player{
		tl:       tl,
		composer: composer,
		cfg:      cfg,

		PlaybackSubject:     observable.NewValue(Stop),
		LoopSubject:         observable.NewValue(Loop),
		CurrentTimeSubject:  observable.NewValue(tl.GlobalStartTime),
		InOutRangeSubject:   observable.NewValue(fullRange),
		FrameSubject:        observable.NewValue[*compose.Frame](nil),
		CachedFramesSubject: observable.NewList[rationaltime.TimeRange](nil),

		playbackStartTime: tl.GlobalStartTime,
		cache:             newFrameCache(),
	}
}

// SetPlayback applies spec §4.5's playback-state-transition rules, then
// updates the PlaybackSubject.
func (p *Player) SetPlayback(v Playback) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.CurrentTimeSubject.Get()
	inOut := p.InOutRangeSubject.Get()
	mode := p.LoopSubject.Get()
	b := inOut.EndTimeInclusive()

	switch {
	case mode == Once && v == Forward && current.Equal(b):
		current = inOut.StartTime
		p.CurrentTimeSubject.SetIfChanged(current)
	case mode == Once && v == Reverse && current.Equal(inOut.StartTime):
		current = b
		p.CurrentTimeSubject.SetIfChanged(current)
	case mode == PingPong && v == Forward && current.Equal(b):
		v = Reverse
	case mode == PingPong && v == Reverse && current.Equal(inOut.StartTime):
		v = Forward
	}

	wasStop := p.PlaybackSubject.Get() == Stop
	p.PlaybackSubject.SetIfChanged(v)
	if wasStop && v != Stop {
		p.startWallclock = time.Now()
		p.playbackStartTime = current
	}
}

// Tick advances current_time (if playing), updates the frame cache, and
// publishes the frame at current_time. Safe to call at any rate; never
// blocks (spec §5).
func (p *Player) Tick(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	playback := p.PlaybackSubject.Get()
	if playback != Stop {
		p.advanceCurrentTime(now, playback)
	}

	p.frameCacheUpdate()

	current := p.CurrentTimeSubject.Get()
	if frame, ok := p.cache.frames[current]; ok {
		p.FrameSubject.SetIfChanged(frame)
	} else {
		p.FrameSubject.SetIfChanged(nil)
	}
}

func (p *Player) advanceCurrentTime(now time.Time, playback Playback) {
	rate := p.tl.Rate()
	elapsed := now.Sub(p.startWallclock).Seconds()
	delta := rationaltime.New(floorFloat(elapsed*rate), rate)

	var candidate rationaltime.RationalTime
	if playback == Forward {
		candidate = p.playbackStartTime.Add(delta)
	} else {
		candidate = p.playbackStartTime.Sub(delta)
	}

	mode := p.LoopSubject.Get()
	inOut := p.InOutRangeSubject.Get()
	normalized, newPlayback, wrapped := LoopTime(candidate, inOut, mode, playback)

	if newPlayback != playback {
		p.PlaybackSubject.SetIfChanged(newPlayback)
	}
	if wrapped {
		p.startWallclock = now
		p.playbackStartTime = normalized
	}
	p.CurrentTimeSubject.SetIfChanged(normalized)
}

func floorFloat(v float64) float64 {
	i := int64(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}

// frameCacheUpdate implements spec §4.5's frame-cache-update algorithm.
func (p *Player) frameCacheUpdate() {
	current := p.CurrentTimeSubject.Get()
	inOut := p.InOutRangeSubject.Get()
	mode := p.LoopSubject.Get()

	w := windowTimes(current, inOut, mode, p.cfg.ReadBehind, p.cfg.ReadAhead)
	ranges := rationaltime.ToRanges(w)

	p.cache.evict(ranges)
	p.cache.submitMissing(w, p.composer)
	p.cache.drainReady()

	p.composer.SetActiveRanges(ranges)
	p.CachedFramesSubject.SetIfChanged(rationaltime.ToRanges(p.cache.keys()))
}

// Seek loop-normalizes t against the full timeline range, updates
// current_time if changed, resets wallclock anchors, and cancels pending
// composer requests. Cached frames are retained.
func (p *Player) Seek(t rationaltime.RationalTime) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fullRange := p.tl.GlobalRange()
	mode := p.LoopSubject.Get()
	playback := p.PlaybackSubject.Get()
	normalized, newPlayback, _ := LoopTime(t, fullRange, mode, playback)

	changed := p.CurrentTimeSubject.SetIfChanged(normalized)
	if newPlayback != playback {
		p.PlaybackSubject.SetIfChanged(newPlayback)
	}
	if changed {
		p.startWallclock = time.Now()
		p.playbackStartTime = normalized
		p.cache.cancelPending()
		p.composer.CancelFrames()
	}
}

// DoFrameAction performs one of the spec §4.5 frame actions, forcing
// playback to Stop first.
func (p *Player) DoFrameAction(action FrameAction) {
	p.SetPlayback(Stop)

	inOut := p.InOutRangeSubject.Get()
	current := p.CurrentTimeSubject.Get()
	rate := current.Rate

	switch action {
	case ActionStart:
		p.Seek(inOut.StartTime)
	case ActionEnd:
		p.Seek(inOut.EndTimeInclusive())
	case ActionPrev:
		p.Seek(current.Sub(rationaltime.New(1, rate)))
	case ActionNext:
		p.Seek(current.Add(rationaltime.New(1, rate)))
	}
}

// SetInPoint sets in_out_range to [current_time, out] (spec §4.5).
func (p *Player) SetInPoint() {
	p.mu.Lock()
	defer p.mu.Unlock()
	current := p.CurrentTimeSubject.Get()
	out := p.InOutRangeSubject.Get().EndTimeInclusive()
	p.setInOutRange(current, out)
}

// SetOutPoint sets in_out_range to [in, current_time].
func (p *Player) SetOutPoint() {
	p.mu.Lock()
	defer p.mu.Unlock()
	in := p.InOutRangeSubject.Get().StartTime
	current := p.CurrentTimeSubject.Get()
	p.setInOutRange(in, current)
}

// ResetInPoint sets in_out_range to [global_start, out].
func (p *Player) ResetInPoint() {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.InOutRangeSubject.Get().EndTimeInclusive()
	p.setInOutRange(p.tl.GlobalStartTime, out)
}

// ResetOutPoint sets in_out_range to [in, global_start+duration].
func (p *Player) ResetOutPoint() {
	p.mu.Lock()
	defer p.mu.Unlock()
	in := p.InOutRangeSubject.Get().StartTime
	end := p.tl.GlobalStartTime.Add(p.tl.Duration).Sub(rationaltime.New(1, p.tl.Rate()))
	p.setInOutRange(in, end)
}

func (p *Player) setInOutRange(start, endInclusive rationaltime.RationalTime) {
	rate := start.Rate
	duration := endInclusive.Sub(start).Add(rationaltime.New(1, rate))
	p.InOutRangeSubject.SetIfChanged(rationaltime.NewTimeRange(start, duration))
}

// Composer exposes the underlying composer, e.g. so a caller can Stop it
// on shutdown alongside the player.
func (p *Player) Composer() *compose.Composer { return p.composer }
