package lz4mt

// FLG is the first bitfield byte of a frame header. Fields are listed
// from the most-significant bits down; on the wire presetDictionary is
// bit 0 and versionNumber occupies bits 6-7.
type FLG struct {
	VersionNumber     uint8 // 2 bits, must be 1
	BlockIndependence bool  // 1 bit, must be true (block-dependency mode unsupported)
	BlockChecksum     bool  // 1 bit
	StreamSize        bool  // 1 bit
	StreamChecksum    bool  // 1 bit
	Reserved1         uint8 // 1 bit, must be 0
	PresetDictionary  bool  // 1 bit, must be false (unsupported)
}

// BD is the second bitfield byte of a frame header.
type BD struct {
	BlockMaximumSize uint8 // 3 bits, valid range 4..=7
	Reserved2        uint8 // 1 bit, must be 0
	Reserved3        uint8 // 4 bits, must be 0
}

// FrameDescriptor describes one LZ4 frame: the FLG/BD bitfields plus the
// two optional trailing fields they gate.
type FrameDescriptor struct {
	Flg        FLG
	Bd         BD
	StreamSize uint64 // present iff Flg.StreamSize
	DictID     uint32 // present iff Flg.PresetDictionary (always rejected by Validate)
}

// NewFrameDescriptor returns a descriptor with the library defaults:
// version 1, independent blocks, stream checksum enabled, 4 MiB blocks.
func NewFrameDescriptor() FrameDescriptor {
	return FrameDescriptor{
		Flg: FLG{
			VersionNumber:     1,
			BlockIndependence: true,
			StreamChecksum:    true,
		},
		Bd: BD{
			BlockMaximumSize: blockSizeIDDefault,
		},
	}
}

func (f FLG) encode() byte {
	var b byte
	if f.PresetDictionary {
		b |= 1 << 0
	}
	b |= (f.Reserved1 & 1) << 1
	if f.StreamChecksum {
		b |= 1 << 2
	}
	if f.StreamSize {
		b |= 1 << 3
	}
	if f.BlockChecksum {
		b |= 1 << 4
	}
	if f.BlockIndependence {
		b |= 1 << 5
	}
	b |= (f.VersionNumber & 3) << 6
	return b
}

func decodeFLG(b byte) FLG {
	return FLG{
		PresetDictionary:  (b>>0)&1 != 0,
		Reserved1:         (b >> 1) & 1,
		StreamChecksum:    (b>>2)&1 != 0,
		StreamSize:        (b>>3)&1 != 0,
		BlockChecksum:     (b>>4)&1 != 0,
		BlockIndependence: (b>>5)&1 != 0,
		VersionNumber:     (b >> 6) & 3,
	}
}

func (bd BD) encode() byte {
	var b byte
	b |= bd.Reserved3 & 15
	b |= (bd.BlockMaximumSize & 7) << 4
	b |= (bd.Reserved2 & 1) << 7
	return b
}

func decodeBD(b byte) BD {
	return BD{
		Reserved3:        b & 15,
		BlockMaximumSize: (b >> 4) & 7,
		Reserved2:        (b >> 7) & 1,
	}
}

// Validate checks the descriptor against the rules in the LZ4 frame
// format, returning the first matching error.
func (f FrameDescriptor) Validate() Result {
	switch {
	case f.Flg.VersionNumber != 1:
		return ResultInvalidVersion
	case f.Flg.PresetDictionary:
		return ResultPresetDictionaryNotSupported
	case f.Flg.Reserved1 != 0:
		return ResultInvalidHeader
	case !f.Flg.BlockIndependence:
		return ResultBlockDependenceNotSupported
	case f.Bd.BlockMaximumSize < 4 || f.Bd.BlockMaximumSize > 7:
		return ResultInvalidBlockMaximumSize
	case f.Bd.Reserved2 != 0, f.Bd.Reserved3 != 0:
		return ResultInvalidHeader
	default:
		return ResultOK
	}
}

// blockMaximumSize maps a validated BD.BlockMaximumSize (4..=7) to the
// byte count of the largest block a frame with that descriptor may carry:
// 64 KiB/256 KiB/1 MiB/4 MiB for ids 4-7, computed as 1 << (8 + 2*bd).
func blockMaximumSize(bd uint8) int {
	return 1 << (8 + 2*uint(bd))
}
