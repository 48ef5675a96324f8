package lz4mt

import "github.com/miretskiy/lz4mt/compression"

// defaultCompress, defaultCompressBound, and defaultDecompress are the
// Context defaults: LZ4 block-mode compression via the compression
// package. Compress returns 0 (not a negative number, CompressBlock's
// own convention) when the data would not fit, which the pipeline treats
// as "incompressible" just like any other non-positive return.
func defaultCompress(src, dst []byte) (int, error) {
	return compression.CompressBlock(src, dst)
}

func defaultCompressBound(srcLen int) int {
	return compression.CompressBlockBound(srcLen)
}

func defaultDecompress(src, dst []byte) (int, error) {
	return compression.UncompressBlock(src, dst)
}
