package httputil

import (
	"net/http/httputil"
	"sync"
)

// DefaultBufferSize is the copy buffer size used by the reverse proxies.
const DefaultBufferSize = 32 * 1024

// BufferPool is an interface for temporary buffer allocations.
type BufferPool = httputil.BufferPool

// NewSyncBufferPool creates a BufferPool backed with a sync.Pool.
func NewSyncBufferPool(size int) *SyncBufferPool {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &SyncBufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// SyncBufferPool is a sync.Pool backed BufferPool.
type SyncBufferPool struct {
	size int
	pool sync.Pool
}

// Get returns a slice to be used for buffering.
func (b *SyncBufferPool) Get() []byte {
	return *b.pool.Get().(*[]byte)
}

// Put releases a slice that was used for buffering. Slices of a different
// size are dropped.
func (b *SyncBufferPool) Put(buf []byte) {
	if cap(buf) != b.size {
		return
	}
	buf = buf[:b.size]
	b.pool.Put(&buf)
}

var _ BufferPool = &SyncBufferPool{}
