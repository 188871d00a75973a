package ioplugin

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/jhodges10/tlRender/bufpool"
	"github.com/jhodges10/tlRender/logging"
	"github.com/jhodges10/tlRender/perrors"
	"github.com/jhodges10/tlRender/pixel"
	"github.com/jhodges10/tlRender/rationaltime"
	"github.com/jhodges10/tlRender/timeline"
)

// sequenceThreadCount bounds per-file decode parallelism for an image
// sequence, matching spec §4.2's "parallelism sequenceThreadCount, e.g. 4".
const sequenceThreadCount = 4

// sequenceCacheSize is the default per-file dedup LRU size (spec §4.2: "a
// small LRU cache, size 1 by default").
const sequenceCacheSize = 1

// SequenceDecoderPlugin is the synchronous, stateless per-format decoder a
// concrete sequence plugin (e.g. plugins/pngseq) implements. Spec §4.2:
// "they are synchronous, throw on error (caught and converted to empty
// frame by base)".
type SequenceDecoderPlugin interface {
	GetInfo(path string) (pixel.Info, error)
	Decode(path string, t rationaltime.RationalTime, pool *bufpool.Pool) (*pixel.Image, error)
}

// SequenceReader is the shared image-sequence reader base (spec §4.2):
// one worker goroutine dispatching to a bounded pool of decode calls, with
// a small per-file LRU cache deduplicating consecutive reads of the same
// frame.
//
// Grounded on starsinc1708-TorrX's search-aggregator worker/cache shape,
// generalized to this package's Future/Reader contract; the bounded
// parallel pool uses golang.org/x/sync/semaphore, which the teacher's own
// ecosystem (golang.org/x/sync) already supplies via errgroup.
type SequenceReader struct {
	ref     timeline.ImageSequenceReference
	decoder SequenceDecoderPlugin
	pool    *bufpool.Pool
	rate    float64

	requests  chan frameRequest
	cancelSig chan struct{}
	stopSig   chan struct{}
	stoppedCh chan struct{}

	infoFuture *Future[Info]
}

// NewSequenceReader constructs a reader over an image sequence described
// by ref, decoded by decoder, displayed at rate (the timeline or
// DefaultSpeed-derived rate).
func NewSequenceReader(ref timeline.ImageSequenceReference, decoder SequenceDecoderPlugin, rate float64, pool *bufpool.Pool) *SequenceReader {
	if pool == nil {
		pool = bufpool.New()
	}
	infoFuture, resolveInfo := NewFuture[Info]()
	r := &SequenceReader{
		ref:        ref,
		decoder:    decoder,
		pool:       pool,
		rate:       rate,
		requests:   make(chan frameRequest, 64),
		cancelSig:  make(chan struct{}, 1),
		stopSig:    make(chan struct{}),
		stoppedCh:  make(chan struct{}),
		infoFuture: infoFuture,
	}
	go r.run(resolveInfo)
	return r
}

func (r *SequenceReader) GetInfo() *Future[Info] { return r.infoFuture }

func (r *SequenceReader) ReadVideoFrame(t rationaltime.RationalTime) *Future[VideoFrame] {
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

func (r *SequenceReader) HasVideoFrames() bool { return len(r.requests) > 0 }

func (r *SequenceReader) CancelVideoFrames() {
	select {
	case r.cancelSig <- struct{}{}:
	default:
	}
}

func (r *SequenceReader) Stop() {
	select {
	case <-r.stopSig:
	default:
		close(r.stopSig)
	}
}

func (r *SequenceReader) HasStopped() bool {
	select {
	case <-r.stoppedCh:
		return true
	default:
		return false
	}
}

func (r *SequenceReader) run(resolveInfo func(Info, error)) {
	defer close(r.stoppedCh)

	firstPath := r.ref.FirstFramePath()
	info, err := r.decoder.GetInfo(firstPath)
	if err != nil {
		resolveInfo(Info{}, perrors.NewOpenError("SequenceReader.Open", err))
		r.drainUntilStopped()
		return
	}
	resolveInfo(Info{Streams: []pixel.Info{info}, VideoDuration: rationaltime.Invalid}, nil)

	sem := semaphore.NewWeighted(sequenceThreadCount)
	cache := newLRU[string, *pixel.Image](sequenceCacheSize)
	ctx := context.Background()

	for {
		select {
		case <-r.stopSig:
			return
		case <-r.cancelSig:
			for _, req := range r.drainBatch(cap(r.requests)) {
				req.resolve(VideoFrame{Time: req.time}, nil)
			}
			continue
		default:
		}

		// Drain up to sequenceThreadCount requests per cycle (spec §5:
		// "a reader may batch-drain up to sequenceThreadCount requests
		// per wait cycle"), dispatched concurrently on the semaphore
		// pool, FIFO within the batch.
		batch := r.drainBatch(sequenceThreadCount)
		if len(batch) == 0 {
			select {
			case <-r.stopSig:
				return
			case <-r.cancelSig:
				for _, req := range r.drainBatch(cap(r.requests)) {
					req.resolve(VideoFrame{Time: req.time}, nil)
				}
				continue
			case req := <-r.requests:
				batch = append(batch, req)
			}
		}

		for _, req := range batch {
			req := req
			if err := sem.Acquire(ctx, 1); err != nil {
				req.resolve(VideoFrame{Time: req.time}, nil)
				continue
			}
			go func() {
				defer sem.Release(1)
				r.serveOne(req, cache)
			}()
		}
	}
}

func (r *SequenceReader) drainBatch(max int) []frameRequest {
	var batch []frameRequest
	for len(batch) < max {
		select {
		case req := <-r.requests:
			batch = append(batch, req)
		default:
			return batch
		}
	}
	return batch
}

func (r *SequenceReader) serveOne(req frameRequest, cache *lru[string, *pixel.Image]) {
	frameIndex := int(req.time.Value)
	path := timeline.SynthesizePath(r.ref.Base, r.ref.Prefix, r.ref.Padding, frameIndex, r.ref.Suffix)

	if img, ok := cache.Get(path); ok {
		req.resolve(VideoFrame{Time: req.time, Image: img.Retain()}, nil)
		return
	}

	img, err := r.decoder.Decode(path, req.time, r.pool)
	if err != nil {
		logging.Errorf("SequenceReader %s: decode %s: %v", r.ref.Base, path, err)
		req.resolve(VideoFrame{Time: req.time}, nil)
		return
	}
	cache.Put(path, img, func(evicted *pixel.Image) { evicted.Release() })
	req.resolve(VideoFrame{Time: req.time, Image: img.Retain()}, nil)
}

func (r *SequenceReader) drainUntilStopped() {
	for {
		select {
		case <-r.stopSig:
			return
		case req := <-r.requests:
			req.resolve(VideoFrame{Time: req.time}, nil)
		}
	}
}
