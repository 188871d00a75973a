package ioplugin

import (
	"fmt"
	"time"

	"github.com/erparts/reisen"
	"github.com/jhodges10/tlRender/bufpool"
	"github.com/jhodges10/tlRender/logging"
	"github.com/jhodges10/tlRender/perrors"
	"github.com/jhodges10/tlRender/pixel"
	"github.com/jhodges10/tlRender/rationaltime"
)

// MovieReader decodes a single video file through reisen (FFmpeg). It
// follows the Open/Serve/Stopping state machine of spec §4.2: one worker
// goroutine owns the reisen.Media/VideoStream pair, serving ReadVideoFrame
// requests off a queue, seeking only when the requested time doesn't
// follow on from the last decoded frame.
//
// The worker/request-queue split is grounded on
// erparts-go-avebi/controller_stream.go's decode-goroutine design; the
// seek-vs-forward-decode discipline and frame-pump loop are grounded on
// erparts-go-avebi/controller_no_audio.go's internalReadVideoFrame and
// CurrentVideoFrame.
type MovieReader struct {
	path string
	pool *bufpool.Pool

	requests   chan frameRequest
	cancelSig  chan struct{}
	stopSig    chan struct{}
	stoppedCh  chan struct{}
	infoFuture *Future[Info]
}

type frameRequest struct {
	time    rationaltime.RationalTime
	resolve func(VideoFrame, error)
}

// NewMovieReader opens path asynchronously and returns immediately; callers
// await GetInfo() to learn whether the open succeeded.
func NewMovieReader(path string, opts Options, pool *bufpool.Pool) *MovieReader {
	if pool == nil {
		pool = bufpool.New()
	}
	infoFuture, resolveInfo := NewFuture[Info]()
	r := &MovieReader{
		path:       path,
		pool:       pool,
		requests:   make(chan frameRequest, 64),
		cancelSig:  make(chan struct{}, 1),
		stopSig:    make(chan struct{}),
		stoppedCh:  make(chan struct{}),
		infoFuture: infoFuture,
	}
	go r.run(resolveInfo)
	return r
}

func (r *MovieReader) GetInfo() *Future[Info] { return r.infoFuture }

func (r *MovieReader) ReadVideoFrame(t rationaltime.RationalTime) *Future[VideoFrame] {
	f, resolve := NewFuture[VideoFrame]()
	if r.HasStopped() {
		resolve(VideoFrame{Time: t}, nil)
		return f
	}
	select {
	case r.requests <- frameRequest{time: t, resolve: resolve}:
	case <-r.stoppedCh:
		resolve(VideoFrame{Time: t}, nil)
	}
	return f
}

func (r *MovieReader) HasVideoFrames() bool {
	return len(r.requests) > 0
}

func (r *MovieReader) CancelVideoFrames() {
	select {
	case r.cancelSig <- struct{}{}:
	default:
	}
}

func (r *MovieReader) Stop() {
	select {
	case <-r.stopSig:
	default:
		close(r.stopSig)
	}
}

func (r *MovieReader) HasStopped() bool {
	select {
	case <-r.stoppedCh:
		return true
	default:
		return false
	}
}

// run is the worker goroutine body: it opens the media once, publishes
// Info, then serves frame requests until Stop is called.
func (r *MovieReader) run(resolveInfo func(Info, error)) {
	defer close(r.stoppedCh)

	media, err := reisen.NewMedia(r.path)
	if err != nil {
		openErr := perrors.NewOpenError("MovieReader.Open", err)
		resolveInfo(Info{}, openErr)
		r.drainUntilStopped()
		return
	}

	streams := media.VideoStreams()
	if len(streams) == 0 {
		openErr := perrors.NewOpenError("MovieReader.Open", fmt.Errorf("no video streams in %q", r.path))
		resolveInfo(Info{}, openErr)
		media.Close()
		r.drainUntilStopped()
		return
	}
	stream := streams[0]

	frNum, frDenom := stream.FrameRate()
	if frDenom == 0 {
		frDenom = 1
	}
	rate := float64(frNum) / float64(frDenom)
	duration, err := stream.Duration()
	if err != nil {
		openErr := perrors.NewOpenError("MovieReader.Open", err)
		resolveInfo(Info{}, openErr)
		media.Close()
		r.drainUntilStopped()
		return
	}

	if err := media.OpenDecode(); err != nil {
		openErr := perrors.NewOpenError("MovieReader.OpenDecode", err)
		resolveInfo(Info{}, openErr)
		media.Close()
		r.drainUntilStopped()
		return
	}
	if err := stream.Open(); err != nil {
		openErr := perrors.NewOpenError("MovieReader.StreamOpen", err)
		resolveInfo(Info{}, openErr)
		media.CloseDecode()
		media.Close()
		r.drainUntilStopped()
		return
	}

	info := pixel.Info{
		Width:     stream.Width(),
		Height:    stream.Height(),
		PixelType: pixel.PixelType{Channels: pixel.RGBA, DataType: pixel.U8},
	}
	videoDuration := rationaltime.New(duration.Seconds()*rate, rate)
	resolveInfo(Info{Streams: []pixel.Info{info}, VideoDuration: videoDuration}, nil)

	worker := &movieWorker{
		media:         media,
		stream:        stream,
		info:          info,
		rate:          rate,
		frameDuration: time.Duration(float64(time.Second) / rate),
		pool:          r.pool,
		expectedNext:  rationaltime.New(0, rate),
	}
	defer worker.close()

	for {
		select {
		case <-r.stopSig:
			return
		case <-r.cancelSig:
		drain:
			for {
				select {
				case req := <-r.requests:
					req.resolve(VideoFrame{Time: req.time}, nil)
				default:
					break drain
				}
			}
		case req := <-r.requests:
			frame, err := worker.serve(req.time)
			if err != nil {
				logging.Errorf("MovieReader %s: %v", r.path, err)
			}
			req.resolve(frame, err)
		}
	}
}

func (r *MovieReader) drainUntilStopped() {
	for {
		select {
		case <-r.stopSig:
			return
		case req := <-r.requests:
			req.resolve(VideoFrame{Time: req.time}, nil)
		}
	}
}

// movieWorker holds the open reisen handles and the forward-decode state
// (last image, next expected presentation time) used to decide whether a
// request needs a seek or can be served by continuing to decode forward.
type movieWorker struct {
	media  *reisen.Media
	stream *reisen.VideoStream
	info   pixel.Info
	rate   float64

	frameDuration time.Duration
	expectedNext  rationaltime.RationalTime
	lastImage     *pixel.Image
	pool          *bufpool.Pool
}

// serve resolves a single ReadVideoFrame request, seeking only when t does
// not follow on from the previously decoded frame (spec §4.2: "seek only on
// timeline discontinuity").
func (w *movieWorker) serve(t rationaltime.RationalTime) (VideoFrame, error) {
	if !w.expectedNext.IsValid() || !t.Equal(w.expectedNext) {
		if err := w.seek(t); err != nil {
			// best effort: drop the buffered image and keep decoding forward
			logging.Warnf("MovieReader: %v", perrors.NewSeekError("MovieReader.Seek", err))
			if w.lastImage != nil {
				w.lastImage.Release()
				w.lastImage = nil
			}
		}
	}

	frame, err := w.decodeForward(t)
	if err != nil {
		return VideoFrame{Time: t}, perrors.NewDecodeError("MovieReader.Decode", err)
	}
	if frame == nil {
		// end of stream: resolve with an empty image, not an error
		return VideoFrame{Time: t}, nil
	}

	if w.lastImage != nil {
		w.lastImage.Release()
	}
	img := pixel.New(w.info, w.pool)
	copy(img.Data(), frame.Data())
	w.lastImage = img
	w.expectedNext = t.Add(rationaltime.New(1, w.rate))

	return VideoFrame{Time: t, Image: img.Retain()}, nil
}

func (w *movieWorker) seek(t rationaltime.RationalTime) error {
	pos := time.Duration(t.Seconds() * float64(time.Second))
	if pos < 0 {
		pos = 0
	}
	return w.stream.Rewind(pos)
}

// decodeForward pumps packets/frames until the presentation offset of a
// decoded frame reaches or exceeds t, mirroring the teacher's
// CurrentVideoFrame pump loop. It returns (nil, nil) at end of stream.
func (w *movieWorker) decodeForward(t rationaltime.RationalTime) (*reisen.VideoFrame, error) {
	target := time.Duration(t.Seconds() * float64(time.Second))
	for {
		frame, err := w.readOneVideoFrame()
		if err != nil {
			return nil, err
		}
		if frame == nil {
			return nil, nil
		}
		offset, err := frame.PresentationOffset()
		if err != nil {
			return nil, err
		}
		if offset+w.frameDuration > target {
			return frame, nil
		}
	}
}

func (w *movieWorker) readOneVideoFrame() (*reisen.VideoFrame, error) {
	for {
		packet, found, err := w.media.ReadPacket()
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		if packet.Type() != reisen.StreamVideo || packet.StreamIndex() != w.stream.Index() {
			continue
		}
		frame, _, err := w.stream.ReadVideoFrame()
		if err != nil {
			return nil, err
		}
		if frame != nil {
			return frame, nil
		}
		// frameFound true with a nil frame is a decoder-internal skip; keep reading
	}
}

func (w *movieWorker) close() {
	if w.lastImage != nil {
		w.lastImage.Release()
	}
	w.stream.Rewind(0)
	w.stream.Close()
	w.media.CloseDecode()
	w.media.Close()
}
