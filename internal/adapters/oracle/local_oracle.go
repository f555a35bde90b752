package oracle

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

// localOracle rejects images that already carry one of our signatures.
type localOracle struct {
	inspector ports.SignatureInspector
	log       zerolog.Logger
}

// NewLocalOracle creates an ImageOracle that needs no external service.
func NewLocalOracle(inspector ports.SignatureInspector, baseLogger *zerolog.Logger) ports.ImageOracle {
	return &localOracle{
		inspector: inspector,
		log:       baseLogger.With().Str("component", "local_oracle").Logger(),
	}
}

func (o *localOracle) Validate(ctx context.Context, name string, data []byte) (domain.Verdict, error) {
	if o.inspector.Detect(data) {
		o.log.Info().Str("name", name).Msg("Image is already signed")
		return domain.Verdict{Reason: ReasonSteganography}, nil
	}
	return domain.Verdict{Valid: true}, nil
}

// chain asks every oracle in order; the first refusal or error wins.
type chain []ports.ImageOracle

// Chain combines oracles. The image is valid only if all of them say so.
func Chain(oracles ...ports.ImageOracle) ports.ImageOracle {
	return chain(oracles)
}

func (c chain) Validate(ctx context.Context, name string, data []byte) (domain.Verdict, error) {
	verdict := domain.Verdict{Valid: len(c) > 0}
	for _, o := range c {
		v, err := o.Validate(ctx, name, data)
		if err != nil {
			return domain.Verdict{}, err
		}
		if v.Reason != "" {
			return v, nil
		}
		verdict.Valid = verdict.Valid && v.Valid
	}
	return verdict, nil
}
