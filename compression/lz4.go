// Package compression wraps the single-block LZ4 codec the framing
// pipeline treats as an external collaborator. Grounded on
// miretskiy/blobcache's own compression/lz4.go and bureau-foundation/
// bureau's lib/artifactstore/compress.go, both of which wrap
// github.com/pierrec/lz4/v4's block-mode functions the same way; this
// version drops the multi-codec Codex/Level abstraction since the frame
// format this pipeline serves only ever uses LZ4.
package compression

import "github.com/pierrec/lz4/v4"

// CompressBlock compresses src into dst, returning the number of bytes
// written. A return of 0 means the data did not fit in dst (the frame
// pipeline's "incompressible" signal). CompressBlock already returns 0
// in that case, so no extra bookkeeping is needed here.
func CompressBlock(src, dst []byte) (int, error) {
	return lz4.CompressBlock(src, dst, nil)
}

// UncompressBlock decompresses src into dst, returning the number of
// bytes produced.
func UncompressBlock(src, dst []byte) (int, error) {
	return lz4.UncompressBlock(src, dst)
}

// CompressBlockBound returns the largest size CompressBlock could ever
// produce for an input of length srcLen.
func CompressBlockBound(srcLen int) int {
	return lz4.CompressBlockBound(srcLen)
}
