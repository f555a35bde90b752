package services

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/lsb"
	"StegoGuard/internal/core/policy"
	"StegoGuard/internal/core/ports"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// SteganographyService hides encrypted payloads in image bytes and finds
// them again. It is safe for concurrent use.
type SteganographyService struct {
	sec      ports.SecurityPort
	codec    *lsb.Codec
	identity ports.IdentityProvider
	kind     policy.Kind
	log      zerolog.Logger
}

var _ ports.SignatureInspector = (*SteganographyService)(nil)

// NewSteganographyService wires the engine. The key is whatever sec holds;
// kind is the secondary field type accepted by Detect.
func NewSteganographyService(
	sec ports.SecurityPort,
	codec *lsb.Codec,
	identity ports.IdentityProvider,
	kind policy.Kind,
	baseLogger *zerolog.Logger,
) *SteganographyService {
	if codec == nil {
		codec = lsb.Default
	}
	return &SteganographyService{
		sec:      sec,
		codec:    codec,
		identity: identity,
		kind:     kind,
		log:      baseLogger.With().Str("component", "steganography_service").Logger(),
	}
}

// Apply signs carrier with the identity of the caller found in ctx.
func (s *SteganographyService) Apply(ctx context.Context, carrier []byte) ([]byte, error) {
	id, err := s.currentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.Sign(carrier, id.ID, id.Email)
}

// Sign embeds "identifier|secondary" into a copy of carrier. The fields
// must pass the same shape check Inspect applies, or ErrShape is returned.
func (s *SteganographyService) Sign(carrier []byte, identifier, secondary string) ([]byte, error) {
	// Only frames that Inspect would accept are written.
	payload, err := policy.ValidatePayload(domain.Payload{Identifier: identifier, Secondary: secondary}.String(), s.kind)
	if err != nil {
		return nil, err
	}

	ciphertext, err := s.sec.Encrypt([]byte(payload.String()))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encrypt payload")
		return nil, fmt.Errorf("encrypt payload: %w", err)
	}

	out, err := s.codec.Embed(carrier, ciphertext)
	if err != nil {
		capacity := s.codec.Capacity(len(carrier))
		s.log.Warn().Err(err).
			Int("carrier_len", len(carrier)).
			Int("capacity", capacity).
			Int("ciphertext_len", len(ciphertext)).
			Msg("Carrier cannot hold signature")
		return nil, fmt.Errorf("embed %d bytes, carrier holds %d: %w", len(ciphertext), capacity, err)
	}

	s.log.Debug().Int("carrier_len", len(carrier)).Int("ciphertext_len", len(ciphertext)).Msg("Carrier signed")
	return out, nil
}

// SignTimestamp embeds "identifier|<unix seconds>".
func (s *SteganographyService) SignTimestamp(carrier []byte, identifier string, at time.Time) ([]byte, error) {
	return s.Sign(carrier, identifier, strconv.FormatInt(at.Unix(), 10))
}

// Inspect runs the full extraction pipeline and reports why it stopped.
func (s *SteganographyService) Inspect(carrier []byte) (domain.Payload, error) {
	ciphertext, err := s.codec.Extract(carrier)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("extract frame: %w", err)
	}

	plaintext, err := s.sec.Decrypt(ciphertext)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("decrypt frame: %w", err)
	}

	return policy.ValidatePayload(string(plaintext), s.kind)
}

// Detect reports whether carrier holds a valid signature under this key.
// It never fails; unmarked images are the normal case.
func (s *SteganographyService) Detect(carrier []byte) bool {
	_, ok := s.ExtractPayload(carrier)
	return ok
}

// ExtractPayload returns the hidden plaintext. ok is false when there is none.
func (s *SteganographyService) ExtractPayload(carrier []byte) (payload string, ok bool) {
	p, err := s.Inspect(carrier)
	if err != nil {
		s.log.Debug().Err(err).Int("carrier_len", len(carrier)).Msg("No signature found")
		return "", false
	}
	return p.String(), true
}

func (s *SteganographyService) currentIdentity(ctx context.Context) (*domain.Identity, error) {
	if s.identity == nil {
		return nil, domain.ErrAuthentication
	}
	id, err := s.identity.CurrentIdentity(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to resolve identity")
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	if id == nil {
		return nil, domain.ErrAuthentication
	}
	return id, nil
}
