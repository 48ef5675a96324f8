package lz4mt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSkippableMagic(t *testing.T) {
	require.False(t, isSkippableMagic(frameMagic))
	require.True(t, isSkippableMagic(skippableMagicMin))
	require.True(t, isSkippableMagic(skippableMagicMax))
	require.True(t, isSkippableMagic(0x184D2A57))
	require.False(t, isSkippableMagic(skippableMagicMin-1))
	require.False(t, isSkippableMagic(skippableMagicMax+1))
}

func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	sd := NewFrameDescriptor()
	sd.Flg.BlockChecksum = true

	header := encodeHeader(sd, newXXH32)
	require.Equal(t, frameMagic, leUint32(header[:4]))

	flgBD := header[4:6]
	trailing := header[6:]

	decoded, r := decodeHeaderBody(flgBD[0], flgBD[1], trailing, newXXH32)
	require.Equal(t, ResultOK, r)
	require.Equal(t, sd, decoded.sd)
	require.Equal(t, blockMaximumSize(sd.Bd.BlockMaximumSize), decoded.blockMaximumSize)
}

func TestEncodeDecodeHeaderRoundTripWithStreamSize(t *testing.T) {
	sd := NewFrameDescriptor()
	sd.Flg.StreamSize = true
	sd.StreamSize = 1 << 24

	header := encodeHeader(sd, newXXH32)
	flgBD := header[4:6]
	trailing := header[6:]

	decoded, r := decodeHeaderBody(flgBD[0], flgBD[1], trailing, newXXH32)
	require.Equal(t, ResultOK, r)
	require.Equal(t, sd.StreamSize, decoded.sd.StreamSize)
}

func TestDecodeHeaderBody_BadChecksum(t *testing.T) {
	sd := NewFrameDescriptor()
	header := encodeHeader(sd, newXXH32)
	flgBD := header[4:6]
	trailing := append([]byte(nil), header[6:]...)
	trailing[len(trailing)-1] ^= 0xFF

	_, r := decodeHeaderBody(flgBD[0], flgBD[1], trailing, newXXH32)
	require.Equal(t, ResultInvalidHeaderChecksum, r)
}

func TestDecodeHeaderBody_PropagatesValidationFailure(t *testing.T) {
	sd := NewFrameDescriptor()
	sd.Flg.VersionNumber = 3
	header := encodeHeader(sd, newXXH32)
	flgBD := header[4:6]
	trailing := header[6:]

	_, r := decodeHeaderBody(flgBD[0], flgBD[1], trailing, newXXH32)
	require.Equal(t, ResultInvalidVersion, r)
}

func TestTrailingFieldBytes(t *testing.T) {
	require.Equal(t, 1, trailingFieldBytes(FLG{}))
	require.Equal(t, 9, trailingFieldBytes(FLG{StreamSize: true}))
	require.Equal(t, 5, trailingFieldBytes(FLG{PresetDictionary: true}))
	require.Equal(t, 13, trailingFieldBytes(FLG{StreamSize: true, PresetDictionary: true}))
}

func TestBlockSizeWordRoundTrip(t *testing.T) {
	w := encodeBlockSizeWord(12345, false)
	size, incompressible := decodeBlockSizeWord(w)
	require.Equal(t, 12345, size)
	require.False(t, incompressible)

	w = encodeBlockSizeWord(999, true)
	size, incompressible = decodeBlockSizeWord(w)
	require.Equal(t, 999, size)
	require.True(t, incompressible)
}
