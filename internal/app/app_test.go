package app

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/shared/config"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:   "test",
		LogLevel: "info",
		Stego: config.StegoConfig{
			Secret:        "shared secret",
			Salt:          "salt",
			CipherMode:    "gcm",
			BitsPerByte:   1,
			SignatureMode: "identity",
		},
		Oracle: config.OracleConfig{Timeout: time.Second},
	}
}

func TestNew_WithoutDatabase(t *testing.T) {
	nopLogger := zerolog.Nop()
	a, err := New(context.Background(), testConfig(), &nopLogger)
	require.NoError(t, err)
	defer a.Close()

	carrier := make([]byte, 1024)
	signed, err := a.Stego.Sign(carrier, "42", "user@example.com")
	require.NoError(t, err)
	assert.True(t, a.Stego.Detect(signed))

	// No repository means no identity, so the pipeline refuses to sign.
	_, err = a.Images.Upload(context.Background(), domain.ImageUpload{Name: "a.png", Data: carrier})
	assert.ErrorIs(t, err, domain.ErrAuthentication)

	// Images signed already are stopped by the local oracle.
	_, err = a.Images.Upload(context.Background(), domain.ImageUpload{Name: "b.png", Data: signed})
	assert.ErrorIs(t, err, domain.ErrImageRejected)
}

func TestNew_SharedSecretIsStable(t *testing.T) {
	nopLogger := zerolog.Nop()
	cfg := testConfig()

	first, err := New(context.Background(), cfg, &nopLogger)
	require.NoError(t, err)
	defer first.Close()
	second, err := New(context.Background(), cfg, &nopLogger)
	require.NoError(t, err)
	defer second.Close()

	signed, err := first.Stego.Sign(make([]byte, 1024), "42", "user@example.com")
	require.NoError(t, err)

	payload, err := second.Stego.Inspect(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", payload.Identifier)
}

func TestNew_InvalidSettings(t *testing.T) {
	nopLogger := zerolog.Nop()

	cfg := testConfig()
	cfg.Stego.CipherMode = "cbc"
	_, err := New(context.Background(), cfg, &nopLogger)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Stego.BitsPerByte = 9
	_, err = New(context.Background(), cfg, &nopLogger)
	assert.Error(t, err)
}
