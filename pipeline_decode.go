package lz4mt

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/semaphore"
)

// DecompressStream reads one or more LZ4 frames (and any interleaved
// skippable frames) from ctx.Read, writing the concatenated decompressed
// payload to ctx.Write, until ctx.ReadEOF. sd is populated with the most
// recently decoded frame's descriptor. Returns the final sticky result.
func DecompressStream(ctx *Context, sd *FrameDescriptor) Result {
	ctx.setResult(ResultOK)

	var quit atomic.Bool

	for !quit.Load() && !ctx.failed() && !ctx.ReadEOF() {
		magic := ctx.readU32()
		if ctx.failed() {
			if ctx.ReadEOF() {
				ctx.result.Store(int32(ResultOK))
			} else {
				ctx.setResult(ResultInvalidHeader)
			}
			break
		}

		if isSkippableMagic(magic) {
			size := ctx.readU32()
			if ctx.failed() {
				ctx.setResult(ResultInvalidHeader)
				break
			}
			if n, err := ctx.ReadSkippable(magic, size); err != nil || n < 0 {
				ctx.setResult(ResultInvalidHeader)
				break
			}
			log.Warn("skipped skippable frame", "magic", magic, "size", size)
			continue
		}

		if magic != frameMagic {
			_ = ctx.ReadSeek(-4)
			ctx.setResult(ResultInvalidMagicNumber)
			break
		}

		flgBD := make([]byte, 2)
		if n, err := ctx.Read(flgBD); err != nil || n != 2 {
			ctx.setResult(ResultInvalidHeader)
			break
		}

		// Only decoded here to size the trailing read; decodeHeaderBody
		// below re-derives and validates the full descriptor from the
		// raw bytes.
		flg := decodeFLG(flgBD[0])

		trailing := make([]byte, trailingFieldBytes(flg))
		if n, err := ctx.Read(trailing); err != nil || n != len(trailing) {
			ctx.setResult(ResultInvalidHeader)
			break
		}

		decoded, r := decodeHeaderBody(flgBD[0], flgBD[1], trailing, ctx.NewHash)
		if r != ResultOK {
			ctx.setResult(r)
			break
		}
		*sd = decoded.sd

		if r := decodeFrameBlocks(ctx, decoded, &quit); r != ResultOK {
			ctx.setResult(r)
			break
		}
	}

	return ctx.Result()
}

// decodeFrameBlocks runs the block loop for one frame: read/dispatch
// blocks in order, wait for all tasks, then verify the stream checksum.
// Every failure path records its result via ctx.setResult and falls
// through to wg.Wait() rather than returning early, so a read failure
// can never strand already-dispatched tasks still holding the emission
// gate or writing to ctx.Write after this function's caller moves on.
func decodeFrameBlocks(ctx *Context, decoded decodedHeader, quit *atomic.Bool) Result {
	sd := decoded.sd
	pool := ctx.pool()
	sHash := newStreamHash(ctx.NewHash)

	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(ctx.maxWorkers())
	gate := &emissionGate{}
	bgCtx := context.Background()

loop:
	for i := 0; !quit.Load() && !ctx.ReadEOF(); i++ {
		srcBits := ctx.readU32()
		if ctx.failed() {
			quit.Store(true)
			ctx.setResult(ResultCannotReadBlockSize)
			break loop
		}
		if srcBits == endOfStream {
			break
		}

		size, incompressible := decodeBlockSizeWord(srcBits)
		buf := pool.Acquire(size)
		if n, err := ctx.Read(buf.Bytes()); err != nil || n != size {
			buf.Release()
			quit.Store(true)
			ctx.setResult(ResultCannotReadBlockData)
			break loop
		}

		var blockChecksum uint32
		if sd.Flg.BlockChecksum {
			blockChecksum = ctx.readU32()
			if ctx.failed() {
				buf.Release()
				quit.Store(true)
				ctx.setResult(ResultCannotReadBlockChecksum)
				break loop
			}
		}

		wait, done := gate.next()

		blockIndex := i
		run := func() {
			defer buf.Release()
			decodeBlock(ctx, sd, decoded.blockMaximumSize, blockIndex, buf, incompressible, blockChecksum, sHash, quit, done, wait)
		}

		if ctx.sequential() {
			run()
			continue
		}

		if err := sem.Acquire(bgCtx, 1); err != nil {
			close(done)
			buf.Release()
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			run()
		}()
	}

	wg.Wait()

	if ctx.failed() {
		return ctx.Result()
	}

	if sd.Flg.StreamChecksum {
		want := ctx.readU32()
		if ctx.failed() {
			return ctx.setResult(ResultCannotReadStreamChecksum)
		}
		if sHash.digest() != want {
			return ctx.setResult(ResultStreamChecksumMismatch)
		}
	}

	return ResultOK
}

// decodeBlock runs one decode task's contract: verify the
// block checksum off-order, decompress off-order, wait for the
// predecessor's emission, emit, then fold the emitted bytes into the
// stream checksum under its mutex.
func decodeBlock(
	ctx *Context, sd FrameDescriptor, blockMax int, blockIndex int, buf *PooledBuffer,
	incompressible bool, declaredChecksum uint32, sHash *streamHash,
	quit *atomic.Bool, done, wait chan struct{},
) {
	defer close(done)

	if quit.Load() || ctx.failed() {
		awaitPredecessor(wait)
		return
	}

	raw := buf.Bytes()
	if sd.Flg.BlockChecksum {
		if hashBytes(ctx.NewHash, raw) != declaredChecksum {
			quit.Store(true)
			ctx.setResult(ResultBlockChecksumMismatch)
			log.Warn("block checksum mismatch", "block", blockIndex, "size", len(raw))
			awaitPredecessor(wait)
			return
		}
	}

	var out []byte
	if incompressible {
		out = raw
	} else {
		dst := make([]byte, blockMax)
		n, err := ctx.Decompress(raw, dst)
		if err != nil {
			quit.Store(true)
			ctx.setResult(ResultError)
			awaitPredecessor(wait)
			return
		}
		out = dst[:n]
	}

	log.Debug("decoded block", "block", blockIndex, "size", len(out), "fingerprint", xxhash.Sum64(out))

	awaitPredecessor(wait)

	if quit.Load() || ctx.failed() {
		return
	}

	if !ctx.writeBin(out) {
		quit.Store(true)
		return
	}
	if sd.Flg.StreamChecksum {
		sHash.update(out)
	}
}
