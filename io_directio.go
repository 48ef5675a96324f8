package lz4mt

import (
	"fmt"
	"io"
	"os"

	"github.com/ncw/directio"
)

// directioChunk is the aligned block size used for every direct read and
// write. directio.BlockSize is the platform's required alignment; sizing
// the transfer chunk at a healthy multiple of it keeps read/write syscall
// count reasonable without needing arbitrarily large allocations.
const directioChunk = 256 * directio.BlockSize

// directioReader serves bytes from an O_DIRECT file handle, refilling one
// aligned chunk at a time. Ground: directio_writer.go's write-side
// counterpart; directioWriter below reuses io_linux.go's isAligned to
// decide whether a given buffer can be handed straight to the kernel or
// must go through the internal chunk.
type directioReader struct {
	f        *os.File
	block    []byte
	pos, n   int
	eof      bool
	pending  []byte
	lastRead []byte
}

func newDirectioReader(path string) (*directioReader, error) {
	f, err := directio.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("lz4mt: open %s for direct read: %w", path, err)
	}
	return &directioReader{f: f, block: directio.AlignedBlock(directioChunk)}, nil
}

func (dr *directioReader) fill() error {
	n, err := dr.f.Read(dr.block)
	dr.pos, dr.n = 0, n
	if err == io.EOF || n == 0 {
		dr.eof = true
	}
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (dr *directioReader) Read(p []byte) (int, error) {
	total := 0
	if len(dr.pending) > 0 {
		n := copy(p, dr.pending)
		dr.pending = dr.pending[n:]
		total += n
	}
	for total < len(p) {
		if dr.pos == dr.n {
			if dr.eof {
				break
			}
			if err := dr.fill(); err != nil {
				dr.recordLast(p[:total])
				return total, err
			}
			continue
		}
		n := copy(p[total:], dr.block[dr.pos:dr.n])
		dr.pos += n
		total += n
	}
	dr.recordLast(p[:total])
	if total == 0 && dr.eof {
		return 0, io.EOF
	}
	return total, nil
}

func (dr *directioReader) recordLast(p []byte) {
	if len(p) == 0 {
		return
	}
	dr.lastRead = append(dr.lastRead[:0], p...)
}

func (dr *directioReader) ReadEOF() bool {
	return len(dr.pending) == 0 && dr.pos == dr.n && dr.eof
}

func (dr *directioReader) ReadSeek(delta int64) error {
	if delta != -4 {
		return fmt.Errorf("lz4mt: unsupported read seek delta %d", delta)
	}
	if len(dr.lastRead) != 4 {
		return fmt.Errorf("lz4mt: nothing to unread")
	}
	dr.pending = append(append([]byte(nil), dr.lastRead...), dr.pending...)
	dr.eof = false
	return nil
}

func (dr *directioReader) ReadSkippable(magic uint32, size uint32) (int, error) {
	n, err := io.CopyN(io.Discard, dr, int64(size))
	if err == io.EOF {
		return int(n), io.ErrUnexpectedEOF
	}
	return int(n), err
}

func (dr *directioReader) Close() error {
	return dr.f.Close()
}

// directioWriter accumulates output into an aligned chunk and issues
// O_DIRECT writes once it fills, falling back to a regular buffered
// handle for the final short tail (O_DIRECT requires aligned length as
// well as aligned buffers on most platforms, and the stream's last write
// is essentially never chunk-aligned). Ground: directio_writer.go.
type directioWriter struct {
	path  string
	f     *os.File
	block []byte
	used  int
	off   int64
}

func newDirectioWriter(path string) (*directioWriter, error) {
	f, err := directio.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("lz4mt: open %s for direct write: %w", path, err)
	}
	return &directioWriter{path: path, f: f, block: directio.AlignedBlock(directioChunk)}, nil
}

func (dw *directioWriter) Write(p []byte) (int, error) {
	total := 0

	// Fast path: nothing buffered and p opens with a full, already-aligned
	// chunk, hand it straight to the kernel instead of copying it through
	// dw.block first.
	for dw.used == 0 && len(p) >= len(dw.block) && isAligned(p) {
		n := len(dw.block)
		if _, err := dw.f.Write(p[:n]); err != nil {
			return total, err
		}
		dw.off += int64(n)
		total += n
		p = p[n:]
	}

	for len(p) > 0 {
		n := copy(dw.block[dw.used:], p)
		dw.used += n
		p = p[n:]
		total += n
		if dw.used == len(dw.block) {
			if _, err := dw.f.Write(dw.block); err != nil {
				return total, err
			}
			dw.off += int64(dw.used)
			dw.used = 0
		}
	}
	return total, nil
}

// Flush writes any partial trailing chunk through a non-direct handle on
// the same path, since O_DIRECT on most platforms refuses unaligned
// lengths, and calls fdatasync so the caller's data is durable on return.
func (dw *directioWriter) Flush() error {
	if dw.used == 0 {
		return dw.f.Sync()
	}
	tail, err := os.OpenFile(dw.path, os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("lz4mt: reopen %s for tail write: %w", dw.path, err)
	}
	defer tail.Close()
	if _, err := tail.WriteAt(dw.block[:dw.used], dw.off); err != nil {
		return err
	}
	if err := fdatasync(tail); err != nil {
		return err
	}
	dw.off += int64(dw.used)
	dw.used = 0
	return nil
}

func (dw *directioWriter) Close() error {
	return dw.f.Close()
}

// WireDirectio points ctx's I/O callbacks at O_DIRECT file adapters for
// inPath/outPath. The returned close func flushes the writer's trailing
// partial chunk and closes both handles; callers must invoke it once,
// after the stream call returns.
func WireDirectio(ctx *Context, inPath, outPath string) (close func() error, err error) {
	dr, err := newDirectioReader(inPath)
	if err != nil {
		return nil, err
	}
	dw, err := newDirectioWriter(outPath)
	if err != nil {
		dr.Close()
		return nil, err
	}

	ctx.Read = dr.Read
	ctx.Write = dw.Write
	ctx.ReadEOF = dr.ReadEOF
	ctx.ReadSeek = dr.ReadSeek
	ctx.ReadSkippable = dr.ReadSkippable

	return func() error {
		ferr := dw.Flush()
		cerr := dw.Close()
		rerr := dr.Close()
		if ferr != nil {
			return ferr
		}
		if cerr != nil {
			return cerr
		}
		return rerr
	}, nil
}
