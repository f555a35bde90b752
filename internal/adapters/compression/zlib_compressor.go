package compression

import (
	"StegoGuard/internal/core/ports"
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// zlibCompressor stores images as zlib streams.
type zlibCompressor struct {
	level int
}

// NewZlibCompressor creates a Compressor using the best compression level.
func NewZlibCompressor() ports.Compressor {
	return &zlibCompressor{level: zlib.BestCompression}
}

func (c *zlibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *zlibCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib read: %w", err)
	}
	return out, nil
}
