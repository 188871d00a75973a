package pixel

import (
	"sync/atomic"

	"github.com/jhodges10/tlRender/bufpool"
)

// Image is an Info plus its raw pixel bytes and string tags. Images are
// produced once (by a reader) and then shared by reference across the
// reader's internal buffer, the frame cache and the composed Frame;
// Retain never copies pixels, only the reference.
//
// The zero value is not usable; construct with New or NewFromBytes.
type Image struct {
	info Info
	tags map[string]string
	data []byte
	refs *int32
	pool *bufpool.Pool
}

// New allocates a fresh Image of the given Info from pool (or from a newly
// created pool if pool is nil), zero-initialized.
func New(info Info, pool *bufpool.Pool) *Image {
	if pool == nil {
		pool = bufpool.New()
	}
	data := pool.Get(info.DataByteCount())
	one := int32(1)
	return &Image{info: info, data: data, refs: &one, pool: pool}
}

// NewFromBytes wraps externally-owned bytes (e.g. a decoder's own buffer)
// without involving a bufpool; Release becomes a no-op for such images.
func NewFromBytes(info Info, data []byte) *Image {
	one := int32(1)
	return &Image{info: info, data: data, refs: &one}
}

// Info returns the image's shape/layout description.
func (img *Image) Info() Info { return img.info }

// Data returns the raw pixel bytes. Callers must not retain the slice
// beyond the image's lifetime if they plan to call Release.
func (img *Image) Data() []byte { return img.data }

// Tags returns the image's string-to-string metadata.
func (img *Image) Tags() map[string]string {
	if img.tags == nil {
		return nil
	}
	return img.tags
}

// SetTag sets a tag, allocating the tag map lazily.
func (img *Image) SetTag(key, value string) {
	if img.tags == nil {
		img.tags = make(map[string]string)
	}
	img.tags[key] = value
}

// Retain increments the shared reference count and returns img, so callers
// can hand out the same backing bytes to multiple owners (reader buffer,
// cache, composed frame) without copying pixels.
func (img *Image) Retain() *Image {
	if img == nil {
		return nil
	}
	atomic.AddInt32(img.refs, 1)
	return img
}

// Release decrements the reference count, returning the backing buffer to
// its pool once the count reaches zero. Safe to call on a nil Image.
func (img *Image) Release() {
	if img == nil || img.refs == nil {
		return
	}
	if atomic.AddInt32(img.refs, -1) == 0 && img.pool != nil {
		img.pool.Put(img.data)
		img.data = nil
	}
}

// Equal reports identity equality: two Images are equal only when they
// share the same backing allocation, matching spec's "equality by
// (time, image identity)" rule at the VideoFrame level.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	return img.refs == other.refs
}
