package ports

// SecurityPort defines the interface for encrypting and decrypting payloads.
// The key lives inside the implementation and never leaves it.
type SecurityPort interface {
	// Encrypt takes a plaintext and returns a ciphertext.
	Encrypt(plaintext []byte) (ciphertext []byte, err error)

	// Decrypt takes a ciphertext and returns the original plaintext.
	Decrypt(ciphertext []byte) (plaintext []byte, err error)
}
