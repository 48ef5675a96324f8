package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLI_BufferedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	framedPath := filepath.Join(dir, "framed.lz4mt")
	outPath := filepath.Join(dir, "out.txt")

	data := bytes.Repeat([]byte("cli round trip contents "), 10000)
	require.NoError(t, os.WriteFile(inPath, data, 0644))

	var stderr bytes.Buffer
	code := run([]string{"-compress", "-in", inPath, "-out", framedPath, "-block-size-id", "4"}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	stderr.Reset()
	code = run([]string{"-decompress", "-in", framedPath, "-out", outPath}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestCLI_DirectioRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	framedPath := filepath.Join(dir, "framed.lz4mt")
	outPath := filepath.Join(dir, "out.txt")

	data := bytes.Repeat([]byte("direct io cli contents "), 10000)
	require.NoError(t, os.WriteFile(inPath, data, 0644))

	var stderr bytes.Buffer
	code := run([]string{"-compress", "-directio", "-in", inPath, "-out", framedPath, "-block-size-id", "4"}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	stderr.Reset()
	code = run([]string{"-decompress", "-directio", "-in", framedPath, "-out", outPath}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestCLI_RejectsBothModeFlags(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"-compress", "-decompress"}, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "exactly one of")
}

func TestCLI_RejectsNeitherModeFlag(t *testing.T) {
	var stderr bytes.Buffer
	code := run(nil, &stderr)
	require.Equal(t, 1, code)
}

func TestCLI_DirectioRequiresInAndOut(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"-compress", "-directio"}, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "-directio requires")
}
