package lz4mt

import "github.com/pierrec/xxHash/xxHash32"

// Hash32 is the hash capability treated as an external collaborator:
// initialize with a seed, feed byte ranges, read the intermediate digest.
// hash.Hash32 (the stdlib interface) already includes these methods, so
// xxHash32.New satisfies it directly.
type Hash32 interface {
	Write(p []byte) (int, error)
	Sum32() uint32
	Reset()
}

// checksumSeed is the seed used for every XXH32 computation in the frame
// format: the header checksum, per-block checksums, and the stream
// checksum all use seed 0.
const checksumSeed = 0

// newXXH32 is the default Hash32 factory, backed by the standalone XXH32
// module andybalholm/pack's own LZ4 frame encoder uses, the only hash
// in the example corpus that is bit-compatible with this wire format.
func newXXH32() Hash32 {
	return xxHash32.New(checksumSeed)
}

// hashBytes is a one-shot helper: hash a single byte range and return the
// digest. Used for the header checksum and per-block checksums, which
// never need an incremental hash.Write sequence.
func hashBytes(newHash func() Hash32, p []byte) uint32 {
	h := newHash()
	h.Write(p)
	return h.Sum32()
}

// headerCheckBits derives the 1-byte trailing header checksum from a full
// XXH32 digest: bits 15..8, i.e. (hash >> 8) & 0xFF.
func headerCheckBits(hash uint32) byte {
	return byte((hash >> 8) & 0xFF)
}
