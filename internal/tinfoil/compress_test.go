package tinfoil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gofoil/internal/common"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{in: "off", want: CompressionNone},
		{in: "none", want: CompressionNone},
		{in: "zstd", want: CompressionZstd},
		{in: "zlib", want: CompressionZlib},
		{in: "gzip", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompression(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrUnknownCompression)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompression_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("x"),
		[]byte(`{"files":[{"url":"gdrive:abc#Game","size":100}]}`),
		bytes.Repeat([]byte{0x00, 0xFF, 0x42}, 10000),
	}

	for _, comp := range []Compression{CompressionNone, CompressionZstd, CompressionZlib} {
		t.Run(comp.String(), func(t *testing.T) {
			for _, in := range inputs {
				out, err := comp.Compress(in)
				require.NoError(t, err)

				back, err := comp.Decompress(out)
				require.NoError(t, err)
				assert.Equal(t, len(in), len(back))
				assert.True(t, bytes.Equal(in, back), "decompress must reproduce input exactly")
			}
		})
	}
}

func TestCompression_NoneIsPassThrough(t *testing.T) {
	in := []byte("untouched")
	out, err := CompressionNone.Compress(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFlagByte(t *testing.T) {
	tests := []struct {
		name      string
		comp      Compression
		encrypted bool
		want      byte
	}{
		{name: "plain none", comp: CompressionNone, encrypted: false, want: 0x00},
		{name: "plain zstd", comp: CompressionZstd, encrypted: false, want: 0x0D},
		{name: "plain zlib", comp: CompressionZlib, encrypted: false, want: 0x0E},
		{name: "encrypted none", comp: CompressionNone, encrypted: true, want: 0xF0},
		{name: "encrypted zstd", comp: CompressionZstd, encrypted: true, want: 0xFD},
		{name: "encrypted zlib", comp: CompressionZlib, encrypted: true, want: 0xFE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlagByte(tt.comp, tt.encrypted))
		})
	}
}
