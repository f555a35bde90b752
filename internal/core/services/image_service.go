package services

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SignatureMode selects what the secondary payload field carries.
type SignatureMode string

const (
	// SignIdentity embeds "<user id>|<email>".
	SignIdentity SignatureMode = "identity"
	// SignTimestamp embeds "<user id>|<unix seconds>".
	SignTimestamp SignatureMode = "timestamp"
)

// ImageService is the upload pipeline: oracle gate, signature, compression.
type ImageService struct {
	stego      *SteganographyService
	oracle     ports.ImageOracle
	compressor ports.Compressor
	bus        ports.EventBus
	mode       SignatureMode
	now        func() time.Time
	log        zerolog.Logger
}

// NewImageService creates the upload pipeline. bus may be nil.
func NewImageService(
	stego *SteganographyService,
	oracle ports.ImageOracle,
	compressor ports.Compressor,
	bus ports.EventBus,
	mode SignatureMode,
	baseLogger *zerolog.Logger,
) *ImageService {
	return &ImageService{
		stego:      stego,
		oracle:     oracle,
		compressor: compressor,
		bus:        bus,
		mode:       mode,
		now:        time.Now,
		log:        baseLogger.With().Str("component", "image_service").Logger(),
	}
}

// Upload validates, signs and compresses an image. A partially signed
// image is never returned.
func (s *ImageService) Upload(ctx context.Context, upload domain.ImageUpload) (*domain.StoredImage, error) {
	log := s.log.With().Str("name", upload.Name).Int("size", len(upload.Data)).Logger()

	// 1. Ask the oracle
	verdict, err := s.oracle.Validate(ctx, upload.Name, upload.Data)
	if err != nil {
		log.Error().Err(err).Msg("Image oracle failed")
		return nil, fmt.Errorf("validate image: %w", err)
	}
	if verdict.Reason != "" {
		log.Info().Str("reason", verdict.Reason).Msg("Image rejected by oracle")
		s.publish(ctx, ports.TopicImageRejected, imageRejectedData{Name: upload.Name, Reason: verdict.Reason})
		return nil, fmt.Errorf("%w: %s", domain.ErrImageRejected, verdict.Reason)
	}

	// 2. Sign when the oracle cleared it
	data := upload.Data
	if verdict.Valid {
		data, err = s.sign(ctx, upload.Data)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to sign image")
			return nil, err
		}
	}

	// 3. Compress for storage
	compressed, err := s.compressor.Compress(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compress image")
		return nil, fmt.Errorf("compress image: %w", err)
	}

	stored := &domain.StoredImage{
		ID:          uuid.New(),
		Name:        upload.Name,
		ContentType: upload.ContentType,
		Data:        compressed,
		Signed:      verdict.Valid,
		CreatedAt:   s.now().UTC(),
	}

	if stored.Signed {
		s.publish(ctx, ports.TopicImageSigned, imageSignedData{
			ImageID: stored.ID.String(),
			Name:    stored.Name,
			Mode:    string(s.mode),
		})
	}
	log.Info().Str("image_id", stored.ID.String()).Bool("signed", stored.Signed).Msg("Image processed")
	return stored, nil
}

// Download restores the original image bytes of a stored image.
func (s *ImageService) Download(stored *domain.StoredImage) ([]byte, error) {
	if stored == nil {
		return nil, errors.New("no image")
	}
	data, err := s.compressor.Decompress(stored.Data)
	if err != nil {
		s.log.Error().Err(err).Str("image_id", stored.ID.String()).Msg("Failed to decompress image")
		return nil, fmt.Errorf("decompress image: %w", err)
	}
	return data, nil
}

// Verify reports the signature of raw image bytes, if any.
func (s *ImageService) Verify(data []byte) (domain.Payload, bool) {
	p, err := s.stego.Inspect(data)
	if err != nil {
		s.log.Debug().Err(err).Int("size", len(data)).Msg("Image carries no signature")
		return domain.Payload{}, false
	}
	return p, true
}

func (s *ImageService) sign(ctx context.Context, data []byte) ([]byte, error) {
	switch s.mode {
	case SignTimestamp:
		id, err := s.stego.currentIdentity(ctx)
		if err != nil {
			return nil, err
		}
		return s.stego.SignTimestamp(data, id.ID, s.now())
	default:
		return s.stego.Apply(ctx, data)
	}
}

func (s *ImageService) publish(ctx context.Context, topic string, data interface{}) {
	if s.bus == nil {
		return
	}
	evt, err := newImageEvent(topic, data)
	if err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("Failed to build event")
		return
	}
	if err := s.bus.Publish(ctx, topic, evt); err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("Failed to publish event")
	}
}
