package lz4mt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashBytes_Deterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	a := hashBytes(newXXH32, data)
	b := hashBytes(newXXH32, data)
	require.Equal(t, a, b)
}

func TestHashBytes_DifferentInputsDifferentHashes(t *testing.T) {
	a := hashBytes(newXXH32, []byte("alpha"))
	b := hashBytes(newXXH32, []byte("beta"))
	require.NotEqual(t, a, b)
}

func TestHeaderCheckBits(t *testing.T) {
	require.Equal(t, byte(0x34), headerCheckBits(0x00AB3412))
}
