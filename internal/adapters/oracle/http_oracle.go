package oracle

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Reasons returned to uploaders.
const (
	ReasonSteganography = "Image contains hidden steganography data."
	ReasonAIGenerated   = "AI-generated images are not allowed."
)

// detectionResponse is the JSON body of the detection service.
type detectionResponse struct {
	Steganography *struct {
		SignatureDetected bool `json:"signature_detected"`
	} `json:"steganography"`
	AIDetection *struct {
		IsAIGenerated bool `json:"is_ai_generated"`
	} `json:"ai_detection"`
}

// httpOracle posts images to an external detection service.
type httpOracle struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewHTTPOracle creates an ImageOracle calling the service at url.
func NewHTTPOracle(url string, timeout time.Duration, baseLogger *zerolog.Logger) ports.ImageOracle {
	return &httpOracle{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    baseLogger.With().Str("component", "http_oracle").Logger(),
	}
}

// Validate uploads the image as multipart field "file".
func (o *httpOracle) Validate(ctx context.Context, name string, data []byte) (domain.Verdict, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("build request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return domain.Verdict{}, fmt.Errorf("build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.Verdict{}, fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, &body)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		o.log.Error().Err(err).Str("url", o.url).Msg("Detection service unreachable")
		return domain.Verdict{}, fmt.Errorf("detection service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		o.log.Error().Int("status", resp.StatusCode).Msg("Detection service returned an error")
		return domain.Verdict{}, fmt.Errorf("detection service: unexpected status %d", resp.StatusCode)
	}

	var result detectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.Verdict{}, fmt.Errorf("detection service: bad response: %w", err)
	}

	if result.Steganography != nil && result.Steganography.SignatureDetected {
		return domain.Verdict{Reason: ReasonSteganography}, nil
	}
	if result.AIDetection != nil && result.AIDetection.IsAIGenerated {
		return domain.Verdict{Reason: ReasonAIGenerated}, nil
	}
	return domain.Verdict{Valid: true}, nil
}
