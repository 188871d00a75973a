// Package bufpool provides reusable, sized byte buffers for decoded pixel
// data, following alxayo-rtmp-go/internal/bufpool's size-class pooling
// discipline.
package bufpool

import "sync"

// sizeClasses are tuned for common small-to-HD frame buffer sizes; anything
// larger allocates directly.
var sizeClasses = []int{
	64 * 1024,
	256 * 1024,
	1024 * 1024,
	4 * 1024 * 1024,
	16 * 1024 * 1024,
}

type classPool struct {
	size int
	pool *sync.Pool
}

// Pool hands out byte slices from size-classed sync.Pools to reduce GC
// churn on the hot decode path.
type Pool struct {
	pools []classPool
}

var defaultPool = New()

// Get acquires a buffer from the package-level default pool.
func Get(size int) []byte { return defaultPool.Get(size) }

// Put releases a buffer back to the package-level default pool.
func Put(buf []byte) { defaultPool.Put(buf) }

// New creates a buffer pool with the predefined size classes.
func New() *Pool {
	pools := make([]classPool, len(sizeClasses))
	for i, classSize := range sizeClasses {
		size := classSize
		pools[i] = classPool{
			size: size,
			pool: &sync.Pool{New: func() any { return make([]byte, size) }},
		}
	}
	return &Pool{pools: pools}
}

// Get returns a byte slice of exactly size bytes, backed by the nearest
// size class that fits. Requests larger than the largest class allocate a
// fresh, unpooled slice.
func (p *Pool) Get(size int) []byte {
	if p == nil || size <= 0 {
		return nil
	}
	for i := range p.pools {
		class := &p.pools[i]
		if size <= class.size {
			buf := class.pool.Get().([]byte)
			return buf[:size]
		}
	}
	return make([]byte, size)
}

// Put returns buf to the pool if its capacity matches a predefined size
// class; otherwise it is discarded. The buffer is cleared before reuse.
func (p *Pool) Put(buf []byte) {
	if p == nil || buf == nil {
		return
	}
	capBuf := cap(buf)
	for i := range p.pools {
		class := &p.pools[i]
		if capBuf == class.size {
			full := buf[:class.size]
			clear(full)
			class.pool.Put(full)
			return
		}
	}
}
