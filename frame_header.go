package lz4mt

import "encoding/binary"

const (
	frameMagic            uint32 = 0x184D2204
	skippableMagicMin      uint32 = 0x184D2A50
	skippableMagicMax      uint32 = 0x184D2A5F
	blockSizeIDDefault     uint8  = 7
	endOfStream            uint32 = 0
	incompressibleBit      uint32 = 1 << 31
	blockSizeMask          uint32 = ^uint32(0) >> 1
	maxHeaderSize                 = 4 + 2 + 8 + 4 + 1 // magic + flg/bd + streamSize + dictID + checksum
)

func isSkippableMagic(magic uint32) bool {
	return magic >= skippableMagicMin && magic <= skippableMagicMax
}

// encodeHeader serializes sd into its wire form; the last byte of the
// returned slice is the header checksum. The checksum covers everything
// after the magic number up to (but not including) the checksum byte itself.
func encodeHeader(sd FrameDescriptor, newHash func() Hash32) []byte {
	buf := make([]byte, 0, maxHeaderSize)
	buf = binary.LittleEndian.AppendUint32(buf, frameMagic)

	sumStart := len(buf)
	buf = append(buf, sd.Flg.encode(), sd.Bd.encode())
	if sd.Flg.StreamSize {
		buf = binary.LittleEndian.AppendUint64(buf, sd.StreamSize)
	}
	if sd.Flg.PresetDictionary {
		buf = binary.LittleEndian.AppendUint32(buf, sd.DictID)
	}

	hash := hashBytes(newHash, buf[sumStart:])
	buf = append(buf, headerCheckBits(hash))
	return buf
}

// decodedHeader is the result of a successful header parse: the validated
// descriptor plus the blockMaximumSize it implies.
type decodedHeader struct {
	sd               FrameDescriptor
	blockMaximumSize int
}

// decodeHeaderBody parses the FLG/BD bytes, the optional StreamSize/DictID
// fields, and the trailing checksum from a buffer that starts right after
// the magic number. It does not perform any I/O; the pipeline is
// responsible for reading exactly the right number of bytes first (the
// size depends on which optional fields FLG declares, so the pipeline
// reads FLG/BD, decides how many more bytes to read, then calls this).
func decodeHeaderBody(flgByte, bdByte byte, rest []byte, newHash func() Hash32) (decodedHeader, Result) {
	sd := FrameDescriptor{
		Flg: decodeFLG(flgByte),
		Bd:  decodeBD(bdByte),
	}
	if r := sd.Validate(); r != ResultOK {
		return decodedHeader{}, r
	}

	sum := make([]byte, 0, maxHeaderSize)
	sum = append(sum, flgByte, bdByte)

	p := rest
	if sd.Flg.StreamSize {
		if len(p) < 8 {
			return decodedHeader{}, ResultInvalidHeader
		}
		sd.StreamSize = binary.LittleEndian.Uint64(p)
		sum = append(sum, p[:8]...)
		p = p[8:]
	}
	if sd.Flg.PresetDictionary {
		if len(p) < 4 {
			return decodedHeader{}, ResultInvalidHeader
		}
		sd.DictID = binary.LittleEndian.Uint32(p)
		sum = append(sum, p[:4]...)
		p = p[4:]
	}
	if len(p) < 1 {
		return decodedHeader{}, ResultInvalidHeader
	}
	wantChecksum := p[0]

	gotHash := hashBytes(newHash, sum)
	if headerCheckBits(gotHash) != wantChecksum {
		return decodedHeader{}, ResultInvalidHeaderChecksum
	}

	return decodedHeader{sd: sd, blockMaximumSize: blockMaximumSize(sd.Bd.BlockMaximumSize)}, ResultOK
}

// trailingFieldBytes returns how many more bytes must be read after
// FLG/BD to reach the end of the header (StreamSize + DictID + checksum).
func trailingFieldBytes(flg FLG) int {
	n := 1 // checksum byte
	if flg.StreamSize {
		n += 8
	}
	if flg.PresetDictionary {
		n += 4
	}
	return n
}

// encodeBlockSizeWord packs the on-wire size prefix for one block.
func encodeBlockSizeWord(size int, incompressible bool) uint32 {
	w := uint32(size) & blockSizeMask
	if incompressible {
		w |= incompressibleBit
	}
	return w
}

// decodeBlockSizeWord splits the on-wire size prefix into its size and
// incompressible components.
func decodeBlockSizeWord(word uint32) (size int, incompressible bool) {
	return int(word & blockSizeMask), word&incompressibleBit != 0
}
