package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/miretskiy/lz4mt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes one compress or decompress invocation and returns the
// process exit code. Separated from main so it can be driven directly in
// tests without spawning a subprocess.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("lz4mt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	compress := fs.Bool("compress", false, "compress -in to -out")
	decompress := fs.Bool("decompress", false, "decompress -in to -out")
	in := fs.String("in", "", "input file path (default stdin)")
	out := fs.String("out", "", "output file path (default stdout)")
	blockSizeID := fs.Int("block-size-id", 7, "block maximum size ID (4-7)")
	blockChecksum := fs.Bool("block-checksum", false, "emit/verify a checksum per block")
	streamChecksum := fs.Bool("stream-checksum", true, "emit/verify a whole-stream checksum")
	streamSize := fs.Uint64("stream-size", 0, "declare the uncompressed stream size in the header (0 omits it)")
	sequential := fs.Bool("sequential", false, "run blocks inline instead of in parallel")
	workers := fs.Int("workers", 0, "maximum in-flight block tasks (0 means GOMAXPROCS)")
	useDirectio := fs.Bool("directio", false, "use O_DIRECT file I/O instead of buffered I/O (requires -in and -out)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *compress == *decompress {
		fmt.Fprintln(stderr, "Error: exactly one of -compress or -decompress is required")
		fs.Usage()
		return 1
	}
	if *useDirectio && (*in == "" || *out == "") {
		fmt.Fprintln(stderr, "Error: -directio requires both -in and -out")
		return 1
	}

	ctx := lz4mt.NewContext()
	ctx.MaxWorkers = *workers
	if *sequential {
		ctx.Mode = lz4mt.ModeSequential
	}

	var closeIO func() error
	if *useDirectio {
		var err error
		closeIO, err = lz4mt.WireDirectio(ctx, *in, *out)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		r, w, cleanup, err := openBuffered(*in, *out)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer cleanup()
		closeIO = lz4mt.WireBuffered(ctx, r, w)
	}

	var result lz4mt.Result
	if *compress {
		sd := lz4mt.NewFrameDescriptor()
		sd.Bd.BlockMaximumSize = uint8(*blockSizeID)
		sd.Flg.BlockChecksum = *blockChecksum
		sd.Flg.StreamChecksum = *streamChecksum
		sd.Flg.StreamSize = *streamSize != 0
		sd.StreamSize = *streamSize
		result = lz4mt.CompressStream(ctx, sd)
	} else {
		var sd lz4mt.FrameDescriptor
		result = lz4mt.DecompressStream(ctx, &sd)
	}

	if err := closeIO(); err != nil && result.IsOK() {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if !result.IsOK() {
		fmt.Fprintf(stderr, "Error: %s\n", result)
		return 1
	}
	return 0
}

func openBuffered(in, out string) (r *os.File, w *os.File, cleanup func(), err error) {
	r = os.Stdin
	w = os.Stdout

	if in != "" {
		f, err := os.Open(in)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open %s: %w", in, err)
		}
		r = f
	}
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			if r != os.Stdin {
				r.Close()
			}
			return nil, nil, nil, fmt.Errorf("create %s: %w", out, err)
		}
		w = f
	}

	cleanup = func() {
		if r != os.Stdin {
			r.Close()
		}
		if w != os.Stdout {
			w.Close()
		}
	}
	return r, w, cleanup, nil
}
