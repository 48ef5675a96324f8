package lz4mt

import (
	"sync"
	"sync/atomic"
)

// BufferPool hands out reusable byte buffers for block payloads, adapted
// from the mmap-backed MmapBuffer/MmapPool design (mempool.go). Block
// buffers here are pure in-process scratch space, never needing to
// survive a crash or be shared across processes, so this version drops
// the mmap backing and page pre-warming and keeps only the shape that
// matters for the pipeline: a fixed-size slab pool plus an overflow path
// for sizes the pool wasn't built for, wrapped in a refcounted handle so
// the producer → worker → emitter single-hop ownership model has one
// unambiguous release point.
type BufferPool struct {
	slabSize int
	slabs    chan *PooledBuffer
}

// NewBufferPool creates a pool of capacity preallocated buffers, each
// slabSize bytes. slabSize should be the stream's block maximum size;
// requests larger than that fall back to one-off allocation.
func NewBufferPool(capacity int, slabSize int) *BufferPool {
	p := &BufferPool{
		slabSize: slabSize,
		slabs:    make(chan *PooledBuffer, capacity),
	}
	for i := 0; i < capacity; i++ {
		buf := &PooledBuffer{raw: make([]byte, slabSize), pool: p}
		p.slabs <- buf
	}
	return p
}

// Acquire returns a buffer with at least size bytes of capacity. The
// returned buffer's refcount starts at 1; call Release when done with it.
func (p *BufferPool) Acquire(size int) *PooledBuffer {
	if size > p.slabSize {
		buf := &PooledBuffer{raw: make([]byte, size)}
		buf.refCount.Store(1)
		return buf
	}

	select {
	case buf := <-p.slabs:
		buf.raw = buf.raw[:size]
		buf.refCount.Store(1)
		return buf
	default:
		buf := &PooledBuffer{raw: make([]byte, size, p.slabSize), pool: p}
		buf.refCount.Store(1)
		return buf
	}
}

func (p *BufferPool) release(buf *PooledBuffer) {
	buf.raw = buf.raw[:cap(buf.raw)]
	select {
	case p.slabs <- buf:
	default:
		// Pool is at capacity; this was an overflow slab, let it be
		// collected normally.
	}
}

// PooledBuffer is a refcounted byte buffer handed out by a BufferPool.
// The zero refcount transition is the only release point: once it fires,
// the caller must not touch the buffer's bytes again.
type PooledBuffer struct {
	raw      []byte
	refCount atomic.Int64
	pool     *BufferPool
}

// Bytes returns the buffer's live slice.
func (b *PooledBuffer) Bytes() []byte {
	return b.raw
}

// Truncate shrinks the live slice to n bytes without reallocating.
func (b *PooledBuffer) Truncate(n int) {
	b.raw = b.raw[:n]
}

// Release decrements the refcount and, if it reaches zero, returns the
// buffer to its pool (or simply drops it, for unpooled overflow buffers).
func (b *PooledBuffer) Release() {
	if b.refCount.Add(-1) == 0 && b.pool != nil {
		b.pool.release(b)
	}
}

// defaultPool backs Context instances that don't configure their own
// pool. Sized generously enough for moderate parallelism at the default
// 4 MiB block size; callers compressing many streams concurrently, or
// using smaller block sizes, should supply their own via Context.Pool.
var defaultPool = sync.OnceValue(func() *BufferPool {
	return NewBufferPool(32, 4<<20)
})
