//go:build !linux && !darwin

package lz4mt

import (
	"os"
	"unsafe"

	"github.com/ncw/directio"
)

// fdatasync falls back to a full sync on platforms without a cheaper
// data-only variant.
func fdatasync(f *os.File) error {
	return f.Sync()
}

// isAligned checks block against directio's alignment requirement.
func isAligned(block []byte) bool {
	if len(block) == 0 {
		return true
	}
	alignment := int(uintptr(unsafe.Pointer(&block[0])) & uintptr(directio.AlignSize-1))
	return alignment == 0
}
