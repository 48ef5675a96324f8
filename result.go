package lz4mt

import "fmt"

// Result is the sticky status code carried by a Context for the duration
// of one CompressStream/DecompressStream call. Zero value is ResultOK.
type Result int32

const (
	ResultOK Result = iota
	ResultError
	ResultInvalidMagicNumber
	ResultInvalidHeader
	ResultInvalidVersion
	ResultInvalidHeaderChecksum
	ResultInvalidBlockMaximumSize
	ResultPresetDictionaryNotSupported
	ResultBlockDependenceNotSupported
	ResultCannotWriteHeader
	ResultCannotWriteEOS
	ResultCannotWriteStreamChecksum
	ResultCannotReadBlockSize
	ResultCannotReadBlockData
	ResultCannotReadBlockChecksum
	ResultCannotReadStreamChecksum
	ResultStreamChecksumMismatch
	ResultBlockChecksumMismatch
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultError:
		return "ERROR"
	case ResultInvalidMagicNumber:
		return "INVALID_MAGIC_NUMBER"
	case ResultInvalidHeader:
		return "INVALID_HEADER"
	case ResultInvalidVersion:
		return "INVALID_VERSION"
	case ResultInvalidHeaderChecksum:
		return "INVALID_HEADER_CHECKSUM"
	case ResultInvalidBlockMaximumSize:
		return "INVALID_BLOCK_MAXIMUM_SIZE"
	case ResultPresetDictionaryNotSupported:
		return "PRESET_DICTIONARY_IS_NOT_SUPPORTED_YET"
	case ResultBlockDependenceNotSupported:
		return "BLOCK_DEPENDENCE_IS_NOT_SUPPORTED_YET"
	case ResultCannotWriteHeader:
		return "CANNOT_WRITE_HEADER"
	case ResultCannotWriteEOS:
		return "CANNOT_WRITE_EOS"
	case ResultCannotWriteStreamChecksum:
		return "CANNOT_WRITE_STREAM_CHECKSUM"
	case ResultCannotReadBlockSize:
		return "CANNOT_READ_BLOCK_SIZE"
	case ResultCannotReadBlockData:
		return "CANNOT_READ_BLOCK_DATA"
	case ResultCannotReadBlockChecksum:
		return "CANNOT_READ_BLOCK_CHECKSUM"
	case ResultCannotReadStreamChecksum:
		return "CANNOT_READ_STREAM_CHECKSUM"
	case ResultStreamChecksumMismatch:
		return "STREAM_CHECKSUM_MISMATCH"
	case ResultBlockChecksumMismatch:
		return "BLOCK_CHECKSUM_MISMATCH"
	default:
		return fmt.Sprintf("unknown result(%d)", int32(r))
	}
}

// Error satisfies the error interface so a non-OK Result can be returned
// directly from CompressStream/DecompressStream without a wrapper type.
// ResultOK.Error() still returns a string (callers should check Result ==
// ResultOK, or use IsOK, rather than comparing against nil).
func (r Result) Error() string {
	return r.String()
}

// IsOK reports whether r represents success.
func (r Result) IsOK() bool {
	return r == ResultOK
}

// trivial reports whether r is one of the two "not yet final" states that
// setResult is allowed to overwrite.
func (r Result) trivial() bool {
	return r == ResultOK || r == ResultError
}
