package tinfoil

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/dmitrijs2005/gofoil/internal/common"
)

// ParseCompression maps a configuration string to a compression tag.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "off", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "zlib":
		return CompressionZlib, nil
	}
	return 0, fmt.Errorf("%w: %q", common.ErrUnknownCompression, s)
}

// String returns the configuration spelling of the tag.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "off"
	case CompressionZstd:
		return "zstd"
	case CompressionZlib:
		return "zlib"
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(c))
}

// Compress transforms data with the selected algorithm. CompressionNone is a
// pass-through.
func (c Compression) Compress(data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd init: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionZlib:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("zlib write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("zlib close: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: 0x%02X", common.ErrUnknownCompression, byte(c))
}

// Decompress reverses Compress. It is used by tests to verify the round-trip
// and is handy for inspecting generated containers.
func (c Compression) Decompress(data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd init: %w", err)
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zlib open: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	return nil, fmt.Errorf("%w: 0x%02X", common.ErrUnknownCompression, byte(c))
}
