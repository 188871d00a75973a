// Package ioplugin defines the pluggable media reader contract (spec §4.2),
// the reader registry (spec §4.3), and the two concrete reader families:
// a reisen/FFmpeg-backed movie reader and a numbered-image-sequence reader
// base with bounded parallel decode.
package ioplugin

import (
	"github.com/jhodges10/tlRender/pixel"
	"github.com/jhodges10/tlRender/rationaltime"
)

// Options is a string-to-string map of recognized plugin options, e.g.
// DefaultSpeed (spec §4.3).
type Options map[string]string

// DefaultSpeedKey is the options key carrying a default rate
// (rationaltime.RationalTime in its String() form) for sequences lacking
// an explicit rate.
const DefaultSpeedKey = "DefaultSpeed"

// Info describes an opened media's streams and duration.
type Info struct {
	Streams       []pixel.Info
	VideoDuration rationaltime.RationalTime
}

// VideoFrame is a decoded frame at a point in time. Equality is by (time,
// image identity) per spec §3 — two VideoFrames are equal only if they
// carry the same Image allocation, not merely pixel-identical data.
type VideoFrame struct {
	Time  rationaltime.RationalTime
	Image *pixel.Image // nil on decode/open failure (spec §7)
}

// Equal implements the (time, image identity) equality rule.
func (f VideoFrame) Equal(other VideoFrame) bool {
	return f.Time.Equal(other.Time) && f.Image.Equal(other.Image)
}

// Reader is the asynchronous, per-file decode worker contract every media
// reader (movie or sequence) satisfies, per spec §4.2.
type Reader interface {
	// GetInfo resolves once, on open.
	GetInfo() *Future[Info]

	// ReadVideoFrame enqueues a request. If the reader has already
	// stopped, the returned future resolves immediately to an empty
	// frame (Image == nil).
	ReadVideoFrame(t rationaltime.RationalTime) *Future[VideoFrame]

	// HasVideoFrames reports whether there are unfulfilled requests.
	HasVideoFrames() bool

	// CancelVideoFrames discards all pending requests; their futures
	// resolve to empty frames.
	CancelVideoFrames()

	// Stop requests worker termination.
	Stop()

	// HasStopped reports whether the worker has fully terminated.
	HasStopped() bool
}
