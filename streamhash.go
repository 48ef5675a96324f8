package lz4mt

import "sync"

// streamHash is the stream-checksum coordinator: a running XXH32 over the
// full uncompressed payload. Adapted from the single-threaded
// checksumVerifyingReader pattern (checksum_reader.go), which wraps one
// io.Reader and verifies on EOF; here the hash must instead be fed from
// many goroutines, so a mutex serializes the Write calls.
//
// Encode only ever calls update from the single producer goroutine, so
// the mutex is never contended there, but it is cheap enough, and
// simpler, to take it unconditionally rather than special-case the
// single-writer case.
type streamHash struct {
	mu   sync.Mutex
	hash Hash32
}

func newStreamHash(newHash func() Hash32) *streamHash {
	return &streamHash{hash: newHash()}
}

// update feeds p into the running hash in whatever order its caller
// serializes calls: read order on encode (single producer goroutine, see
// pipeline_encode.go), completion order under the block emission gate on
// decode (pipeline_decode.go).
func (s *streamHash) update(p []byte) {
	s.mu.Lock()
	s.hash.Write(p)
	s.mu.Unlock()
}

func (s *streamHash) digest() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hash.Sum32()
}
