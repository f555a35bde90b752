package domain

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the answer of an image oracle.
type Verdict struct {
	Valid  bool
	Reason string // Set when the image was refused
}

// ImageUpload is an image as received from a client.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// StoredImage is a processed image ready to be persisted by the caller.
type StoredImage struct {
	ID          uuid.UUID
	Name        string
	ContentType string
	Data        []byte // Compressed
	Signed      bool
	CreatedAt   time.Time
}
