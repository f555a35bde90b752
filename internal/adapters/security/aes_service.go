package security

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Mode selects how payloads are enciphered.
type Mode string

const (
	// ModeGCM is authenticated AES-GCM with a random nonce per message.
	ModeGCM Mode = "gcm"
	// ModeECB is deterministic AES/ECB with PKCS#7 padding. It reads frames
	// written by the legacy Java signer.
	ModeECB Mode = "ecb"
)

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeGCM:
		return ModeGCM, nil
	case ModeECB:
		return ModeECB, nil
	default:
		return "", fmt.Errorf("unknown cipher mode %q", s)
	}
}

// aesService implements the SecurityPort interface.
type aesService struct {
	mode  Mode
	block cipher.Block
	gcm   cipher.AEAD
	log   zerolog.Logger
}

// NewAESService creates a new security service holding key for its lifetime.
func NewAESService(key []byte, mode Mode, baseLogger *zerolog.Logger) (ports.SecurityPort, error) {
	if len(key) != KeySize && len(key) != 32 {
		return nil, fmt.Errorf("%w: key must be %d or 32 bytes, got %d", domain.ErrCrypto, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create AES cipher: %v", domain.ErrCrypto, err)
	}

	svc := &aesService{
		mode:  mode,
		block: block,
		log:   baseLogger.With().Str("component", "security_service").Str("mode", string(mode)).Logger(),
	}

	switch mode {
	case ModeGCM:
		svc.gcm, err = cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("%w: could not create GCM: %v", domain.ErrCrypto, err)
		}
	case ModeECB:
		svc.log.Warn().Msg("ECB mode is deterministic and unauthenticated; use only to read legacy signatures")
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrCrypto, mode)
	}

	svc.log.Info().Int("key_bits", len(key)*8).Msg("Security service initialized")
	return svc, nil
}

// Encrypt enciphers plaintext under the service key.
func (s *aesService) Encrypt(plaintext []byte) ([]byte, error) {
	if s.mode == ModeECB {
		return s.encryptECB(plaintext), nil
	}

	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		s.log.Error().Err(err).Msg("Failed to generate nonce")
		return nil, fmt.Errorf("%w: could not generate nonce: %v", domain.ErrCrypto, err)
	}

	return s.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt.
func (s *aesService) Decrypt(ciphertext []byte) ([]byte, error) {
	if s.mode == ModeECB {
		return s.decryptECB(ciphertext)
	}

	nonceSize := s.gcm.NonceSize()
	if len(ciphertext) < nonceSize+s.gcm.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext is too short", domain.ErrCrypto)
	}

	nonce, actualCiphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := s.gcm.Open(nil, nonce, actualCiphertext, nil)
	if err != nil {
		// Expected for unsigned images, so only debug.
		s.log.Debug().Err(err).Msg("Failed to decrypt ciphertext (tampered or foreign key?)")
		return nil, fmt.Errorf("%w: could not decrypt: %v", domain.ErrCrypto, err)
	}

	return plaintext, nil
}

func (s *aesService) encryptECB(plaintext []byte) []byte {
	bs := s.block.BlockSize()
	padded := pkcs7Pad(plaintext, bs)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		s.block.Encrypt(out[i:i+bs], padded[i:i+bs])
	}
	return out
}

func (s *aesService) decryptECB(ciphertext []byte) ([]byte, error) {
	bs := s.block.BlockSize()
	if len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of %d", domain.ErrCrypto, len(ciphertext), bs)
	}
	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += bs {
		s.block.Decrypt(out[i:i+bs], ciphertext[i:i+bs])
	}
	return pkcs7Unpad(out, bs)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append(make([]byte, 0, len(data)+n), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", domain.ErrCrypto)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", domain.ErrCrypto)
		}
	}
	return data[:len(data)-n], nil
}
