package lz4mt

import (
	"runtime"
	"sync/atomic"
)

// Mode selects how a Context schedules block work.
type Mode int

const (
	// ModeParallel dispatches one task per block, bounded by MaxWorkers,
	// with emission serialized to preserve input order. This is the
	// default.
	ModeParallel Mode = iota
	// ModeSequential runs every block inline on the calling goroutine.
	// No tasks are spawned, no ordering gate is needed.
	ModeSequential
)

// Context is the mutable bundle carried through one stream call: sticky
// result, I/O callbacks, codec callbacks, and scheduling knobs. It is
// constructed via NewContext, mutated only by the caller before
// CompressStream or DecompressStream is invoked, consumed for the
// duration of one call, and then reusable for another.
type Context struct {
	// Read fills dst and reports how many bytes it actually read; short
	// reads are treated as end-of-stream by the header/block readers.
	Read func(dst []byte) (int, error)
	// Write must write all of src or report an error; any return other
	// than len(src), nil is treated as a fatal write failure.
	Write func(src []byte) (int, error)
	// ReadEOF reports whether the input is exhausted. Consulted by the
	// producer loop and to distinguish a clean end-of-frame from a
	// truncated header.
	ReadEOF func() bool
	// ReadSeek rewinds (delta is negative) the input by delta bytes.
	// Only ever called with delta == -4, to un-read a rejected magic.
	ReadSeek func(delta int64) error
	// ReadSkippable consumes size bytes belonging to a skippable frame
	// identified by magic. A negative return signals an I/O error.
	ReadSkippable func(magic uint32, size uint32) (int, error)

	// Compress writes a compressed copy of src into dst and returns the
	// number of bytes written, or <= 0 if it would not fit in dst.
	Compress func(src, dst []byte) (int, error)
	// CompressBound returns an upper bound on Compress's output size for
	// an input of length srcLen.
	CompressBound func(srcLen int) int
	// Decompress writes a decompressed copy of src into dst and returns
	// the number of bytes produced.
	Decompress func(src, dst []byte) (int, error)

	// NewHash constructs one XXH32 instance (seed 0). Called once per
	// one-shot hash (header, each block) and once per stream.
	NewHash func() Hash32

	// Mode selects sequential or bounded-parallel scheduling.
	Mode Mode
	// MaxWorkers bounds in-flight block tasks in ModeParallel. Zero means
	// runtime.GOMAXPROCS(0).
	MaxWorkers int
	// Pool supplies block payload buffers. Nil means a shared package
	// default sized for 4 MiB blocks.
	Pool *BufferPool

	result atomic.Int32
}

// NewContext returns a Context configured with the library defaults:
// parallel mode, the LZ4/XXH32 default codec and hash callbacks, and no
// I/O callbacks (the caller must set Read/Write and friends before use).
func NewContext() *Context {
	return &Context{
		Compress:      defaultCompress,
		CompressBound: defaultCompressBound,
		Decompress:    defaultDecompress,
		NewHash:       newXXH32,
		Mode:          ModeParallel,
	}
}

// Result returns the sticky result code set so far.
func (ctx *Context) Result() Result {
	return Result(ctx.result.Load())
}

// setResult applies the "first non-trivial result wins" rule: only
// ResultOK or ResultError are considered not-yet-final, so a specific
// error set by any worker or the producer sticks, and later calls
// (including later generic ResultError writes from I/O wrappers) are
// ignored. Safe to call concurrently.
func (ctx *Context) setResult(r Result) Result {
	for {
		cur := Result(ctx.result.Load())
		if !cur.trivial() {
			return cur
		}
		if ctx.result.CompareAndSwap(int32(cur), int32(r)) {
			return r
		}
	}
}

func (ctx *Context) failed() bool {
	return ctx.Result() != ResultOK
}

func (ctx *Context) maxWorkers() int64 {
	if ctx.MaxWorkers > 0 {
		return int64(ctx.MaxWorkers)
	}
	return int64(runtime.GOMAXPROCS(0))
}

func (ctx *Context) pool() *BufferPool {
	if ctx.Pool != nil {
		return ctx.Pool
	}
	return defaultPool()
}

func (ctx *Context) sequential() bool {
	return ctx.Mode == ModeSequential
}

// readU32 reads a little-endian uint32, folding any I/O failure into the
// sticky result as ResultError (the generic, overridable failure code
// used by low-level I/O wrappers, see setResult's stickiness rule).
func (ctx *Context) readU32() uint32 {
	if ctx.failed() {
		return 0
	}
	var d [4]byte
	n, err := ctx.Read(d[:])
	if err != nil || n != len(d) {
		ctx.setResult(ResultError)
		return 0
	}
	return leUint32(d[:])
}

func (ctx *Context) writeU32(v uint32) bool {
	if ctx.failed() {
		return false
	}
	var d [4]byte
	putLeUint32(d[:], v)
	n, err := ctx.Write(d[:])
	if err != nil || n != len(d) {
		ctx.setResult(ResultError)
		return false
	}
	return true
}

func (ctx *Context) writeBin(p []byte) bool {
	if ctx.failed() || len(p) == 0 {
		return !ctx.failed()
	}
	n, err := ctx.Write(p)
	if err != nil || n != len(p) {
		ctx.setResult(ResultError)
		return false
	}
	return true
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLeUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
