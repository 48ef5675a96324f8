package lz4mt

import (
	"context"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/semaphore"
)

// CompressStream reads from ctx.Read until ctx.ReadEOF, encoding sd's
// frame to ctx.Write. It is the sole encode entry point and returns the
// final sticky result.
func CompressStream(ctx *Context, sd FrameDescriptor) Result {
	if r := sd.Validate(); r != ResultOK {
		return ctx.setResult(r)
	}

	header := encodeHeader(sd, ctx.NewHash)
	if !ctx.writeBin(header) {
		return ctx.setResult(ResultCannotWriteHeader)
	}

	maxBlock := blockMaximumSize(sd.Bd.BlockMaximumSize)
	pool := ctx.pool()
	sHash := newStreamHash(ctx.NewHash)

	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(ctx.maxWorkers())
	gate := &emissionGate{}
	bgCtx := context.Background()

	for i := 0; !ctx.ReadEOF(); i++ {
		if ctx.failed() {
			break
		}

		buf := pool.Acquire(maxBlock)
		n, err := ctx.Read(buf.Bytes())
		if err != nil && err != io.EOF {
			buf.Release()
			ctx.setResult(ResultError)
			break
		}
		if n == 0 {
			buf.Release()
			break
		}
		buf.Truncate(n)

		if sd.Flg.StreamChecksum {
			sHash.update(buf.Bytes())
		}

		wait, done := gate.next()

		blockIndex := i
		run := func() {
			defer buf.Release()
			encodeBlock(ctx, sd, blockIndex, buf, done, wait)
		}

		if ctx.sequential() {
			run()
			continue
		}

		if err := sem.Acquire(bgCtx, 1); err != nil {
			ctx.setResult(ResultError)
			close(done)
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

	if !ctx.writeU32(endOfStream) {
		return ctx.setResult(ResultCannotWriteEOS)
	}

	if sd.Flg.StreamChecksum {
		if !ctx.writeU32(sHash.digest()) {
			return ctx.setResult(ResultCannotWriteStreamChecksum)
		}
	}

	return ctx.Result()
}

// encodeBlock runs one block's full contract: compress off-order
// (unsynchronized with any other block), wait for the predecessor's
// emission to finish, then emit in order. done is closed unconditionally
// on return so the successor is never left waiting on a block that bailed
// out early due to a prior error.
func encodeBlock(ctx *Context, sd FrameDescriptor, blockIndex int, buf *PooledBuffer, done, wait chan struct{}) {
	defer close(done)

	if ctx.failed() {
		awaitPredecessor(wait)
		return
	}

	src := buf.Bytes()
	dst := make([]byte, len(src))
	n, err := ctx.Compress(src, dst)
	incompressible := err != nil || n <= 0

	var payload []byte
	if incompressible {
		payload = src
		log.Warn("block did not compress, storing raw", "block", blockIndex, "size", len(src))
	} else {
		payload = dst[:n]
	}

	log.Debug("encoded block", "block", blockIndex, "size", len(payload), "fingerprint", xxhash.Sum64(payload))

	var checksum uint32
	if sd.Flg.BlockChecksum {
		checksum = hashBytes(ctx.NewHash, payload)
	}

	awaitPredecessor(wait)

	if ctx.failed() {
		return
	}

	if !ctx.writeU32(encodeBlockSizeWord(len(payload), incompressible)) {
		ctx.setResult(ResultError)
		return
	}
	if !ctx.writeBin(payload) {
		ctx.setResult(ResultError)
		return
	}
	if sd.Flg.BlockChecksum {
		ctx.writeU32(checksum)
	}
}
