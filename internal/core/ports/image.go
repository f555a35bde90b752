package ports

import (
	"StegoGuard/internal/core/domain"
	"context"
)

// ImageOracle is the external image-validity / AI-detection service.
// It is consulted before an image is signed.
type ImageOracle interface {
	Validate(ctx context.Context, name string, data []byte) (domain.Verdict, error)
}

// Compressor shrinks images before storage and restores them on retrieval.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// SignatureInspector is the read side of the steganography engine.
type SignatureInspector interface {
	Detect(carrier []byte) bool
	ExtractPayload(carrier []byte) (string, bool)
}
