package lz4mt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferedReader_ReadSeekUnreadsLastFourBytes(t *testing.T) {
	br := newBufferedReader(bytes.NewReader([]byte("ABCDEFGH")))

	buf := make([]byte, 4)
	n, err := br.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "ABCD", string(buf))

	require.NoError(t, br.ReadSeek(-4))

	n, err = br.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "ABCD", string(buf))

	n, err = br.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "EFGH", string(buf))
}

func TestBufferedReader_ReadSeekRejectsOtherDeltas(t *testing.T) {
	br := newBufferedReader(bytes.NewReader([]byte("ABCD")))
	buf := make([]byte, 4)
	_, _ = br.Read(buf)
	require.Error(t, br.ReadSeek(-1))
}

func TestBufferedReader_ReadEOF(t *testing.T) {
	br := newBufferedReader(bytes.NewReader([]byte("hi")))
	require.False(t, br.ReadEOF())

	buf := make([]byte, 2)
	_, _ = br.Read(buf)
	require.True(t, br.ReadEOF())
}

func TestBufferedReader_ReadSkippable(t *testing.T) {
	br := newBufferedReader(bytes.NewReader([]byte("skip-this-restremains")))
	n, err := br.ReadSkippable(0x184D2A50, 10)
	require.NoError(t, err)
	require.Equal(t, 10, n)

	rest := make([]byte, 11)
	n, err = br.Read(rest)
	require.NoError(t, err)
	require.Equal(t, "restremains", string(rest[:n]))
}

func TestWireBuffered_RoundTrip(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext()
	flush := WireBuffered(ctx, bytes.NewReader([]byte("payload")), &out)

	n, err := ctx.Write([]byte("payload"))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.NoError(t, flush())
	require.Equal(t, "payload", out.String())
}
