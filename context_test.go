package lz4mt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContext_SetResultSticky(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, ResultOK, ctx.Result())

	require.Equal(t, ResultBlockChecksumMismatch, ctx.setResult(ResultBlockChecksumMismatch))
	require.Equal(t, ResultBlockChecksumMismatch, ctx.Result())

	// A later, different specific error must not overwrite the first one.
	require.Equal(t, ResultBlockChecksumMismatch, ctx.setResult(ResultStreamChecksumMismatch))
	require.Equal(t, ResultBlockChecksumMismatch, ctx.Result())

	// Generic ERROR writes are also absorbed once a specific code is set.
	require.Equal(t, ResultBlockChecksumMismatch, ctx.setResult(ResultError))
	require.Equal(t, ResultBlockChecksumMismatch, ctx.Result())
}

func TestContext_SetResultErrorThenSpecific(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, ResultError, ctx.setResult(ResultError))
	require.Equal(t, ResultInvalidHeader, ctx.setResult(ResultInvalidHeader))
	require.Equal(t, ResultInvalidHeader, ctx.Result())
}

func TestContext_MaxWorkersDefault(t *testing.T) {
	ctx := NewContext()
	require.Greater(t, ctx.maxWorkers(), int64(0))

	ctx.MaxWorkers = 3
	require.EqualValues(t, 3, ctx.maxWorkers())
}

func TestContext_PoolDefault(t *testing.T) {
	ctx := NewContext()
	require.NotNil(t, ctx.pool())

	custom := NewBufferPool(1, 1024)
	ctx.Pool = custom
	require.Same(t, custom, ctx.pool())
}

func TestContext_Sequential(t *testing.T) {
	ctx := NewContext()
	require.False(t, ctx.sequential())
	ctx.Mode = ModeSequential
	require.True(t, ctx.sequential())
}
