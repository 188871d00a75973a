package player

import (
	"testing"
	"time"

	"github.com/jhodges10/tlRender/compose"
	"github.com/jhodges10/tlRender/ioplugin"
	"github.com/jhodges10/tlRender/pixel"
	"github.com/jhodges10/tlRender/rationaltime"
	"github.com/jhodges10/tlRender/timeline"
)

type fakeReader struct{}

func (fakeReader) GetInfo() *ioplugin.Future[ioplugin.Info] {
	return ioplugin.Resolved(ioplugin.Info{
		Streams:       []pixel.Info{{Width: 1, Height: 1}},
		VideoDuration: rationaltime.New(1000, 24),
	}, nil)
}
func (fakeReader) ReadVideoFrame(t rationaltime.RationalTime) *ioplugin.Future[ioplugin.VideoFrame] {
	img := pixel.NewFromBytes(pixel.Info{Width: 1, Height: 1}, []byte{1})
	return ioplugin.Resolved(ioplugin.VideoFrame{Time: t, Image: img}, nil)
}
func (fakeReader) HasVideoFrames() bool { return false }
func (fakeReader) CancelVideoFrames()   {}
func (fakeReader) Stop()                {}
func (fakeReader) HasStopped() bool     { return true }

type fakePlugin struct{}

func (fakePlugin) Name() string              { return "fake" }
func (fakePlugin) Extensions() []string      { return []string{".mov"} }
func (fakePlugin) WritePixelTypes() []string { return nil }
func (fakePlugin) WriteAlignment(pixel.PixelType) int { return 1 }
func (fakePlugin) WriteEndian() bool                  { return false }
func (fakePlugin) Write(path string, info pixel.Info, opts ioplugin.Options) error {
	return nil
}
func (fakePlugin) Read(path string, opts ioplugin.Options) (ioplugin.Reader, error) {
	return fakeReader{}, nil
}

func newTestPlayer(t *testing.T, withMedia bool) *Player {
	t.Helper()
	b := timeline.NewTimeline(rationaltime.New(0, 24), rationaltime.New(100, 24))
	tb := b.AddTrack(timeline.TrackVideo, "V1")
	ref := timeline.MediaReference{}
	if withMedia {
		ref = timeline.MediaReference{External: &timeline.ExternalReference{TargetURL: "/a.mov"}}
	}
	tb.AddClip(ref, rationaltime.NewTimeRange(rationaltime.New(0, 24), rationaltime.New(100, 24)), nil)
	tl := b.Build()

	registry := ioplugin.NewRegistry()
	registry.Register(fakePlugin{})
	composer := compose.New(tl, registry, nil)
	t.Cleanup(composer.Stop)

	return New(tl, composer, DefaultConfig())
}

func waitForFrame(t *testing.T, p *Player, target rationaltime.RationalTime) *compose.Frame {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.Tick(time.Now())
		if f := p.FrameSubject.Get(); f != nil && f.Time.Equal(target) {
			return f
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for frame at %v", target)
	return nil
}

func TestPlayerPublishesFrameAtCurrentTime(t *testing.T) {
	p := newTestPlayer(t, true)
	frame := waitForFrame(t, p, p.CurrentTimeSubject.Get())
	if len(frame.Layers) != 1 || frame.Layers[0].ImageA == nil {
		t.Fatalf("expected a populated layer, got %+v", frame.Layers)
	}
}

func TestPlayerS5MissingMediaYieldsEmptyLayer(t *testing.T) {
	p := newTestPlayer(t, false)
	frame := waitForFrame(t, p, p.CurrentTimeSubject.Get())
	if len(frame.Layers) != 1 || frame.Layers[0].ImageA != nil {
		t.Fatalf("expected one empty layer for missing media, got %+v", frame.Layers)
	}
}

func TestPlayerSeekUpdatesCurrentTime(t *testing.T) {
	p := newTestPlayer(t, true)
	p.Seek(rationaltime.New(10, 24))
	if got := p.CurrentTimeSubject.Get(); !got.Equal(rationaltime.New(10, 24)) {
		t.Fatalf("current_time = %v, want 10/24", got)
	}
}

func TestPlayerFrameActionsForceStop(t *testing.T) {
	p := newTestPlayer(t, true)
	p.SetPlayback(Forward)
	p.DoFrameAction(ActionNext)
	if p.PlaybackSubject.Get() != Stop {
		t.Fatal("expected frame action to force playback to Stop")
	}
}

func TestPlayerInOutPoints(t *testing.T) {
	p := newTestPlayer(t, true)
	p.Seek(rationaltime.New(10, 24))
	p.SetInPoint()
	if got := p.InOutRangeSubject.Get().StartTime; !got.Equal(rationaltime.New(10, 24)) {
		t.Fatalf("in point = %v, want 10/24", got)
	}

	p.Seek(rationaltime.New(20, 24))
	p.SetOutPoint()
	if got := p.InOutRangeSubject.Get().EndTimeInclusive(); !got.Equal(rationaltime.New(20, 24)) {
		t.Fatalf("out point = %v, want 20/24", got)
	}
}
