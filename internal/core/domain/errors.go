package domain

import "errors"

// Error classes of the signing engine. Components wrap these with
// context, callers match them with errors.Is.
var (
	// ErrCrypto covers key, cipher initialisation, padding and
	// authentication failures.
	ErrCrypto = errors.New("crypto error")

	// ErrCapacity means the carrier cannot hold the frame, or a frame
	// header claims more data than the carrier has.
	ErrCapacity = errors.New("carrier capacity exceeded")

	// ErrFormat means the carrier is shorter than a frame header.
	ErrFormat = errors.New("carrier too short for header")

	// ErrAuthentication means no identity could be resolved to sign for.
	ErrAuthentication = errors.New("no authenticated identity")

	// ErrShape means a plaintext is not a valid two-field payload.
	ErrShape = errors.New("invalid payload shape")

	// ErrImageRejected means the image oracle refused the upload.
	ErrImageRejected = errors.New("image rejected")
)
