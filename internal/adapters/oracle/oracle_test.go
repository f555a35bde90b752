package oracle

import (
	"StegoGuard/internal/core/domain"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detectionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		file, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer file.Close()
			data, _ := io.ReadAll(file)
			assert.Equal(t, "cat.png", header.Filename)
			assert.Equal(t, []byte("image-bytes"), data)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPOracle_Validate(t *testing.T) {
	nopLogger := zerolog.Nop()

	testCases := []struct {
		name    string
		status  int
		body    string
		want    domain.Verdict
		wantErr bool
	}{
		{
			name:   "clean",
			status: http.StatusOK,
			body:   `{"steganography":{"signature_detected":false},"ai_detection":{"is_ai_generated":false}}`,
			want:   domain.Verdict{Valid: true},
		},
		{
			name:   "signed",
			status: http.StatusOK,
			body:   `{"steganography":{"signature_detected":true},"ai_detection":{"is_ai_generated":true}}`,
			want:   domain.Verdict{Reason: ReasonSteganography},
		},
		{
			name:   "ai generated",
			status: http.StatusOK,
			body:   `{"ai_detection":{"is_ai_generated":true}}`,
			want:   domain.Verdict{Reason: ReasonAIGenerated},
		},
		{
			name:   "empty object",
			status: http.StatusOK,
			body:   `{}`,
			want:   domain.Verdict{Valid: true},
		},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: true},
		{name: "garbage", status: http.StatusOK, body: `not json`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := detectionServer(t, tc.status, tc.body)
			o := NewHTTPOracle(srv.URL, 5*time.Second, &nopLogger)

			got, err := o.Validate(context.Background(), "cat.png", []byte("image-bytes"))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHTTPOracle_Unreachable(t *testing.T) {
	nopLogger := zerolog.Nop()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPOracle(url, time.Second, &nopLogger).Validate(context.Background(), "x.png", nil)
	assert.Error(t, err)
}

// fakeInspector reports a fixed detection result.
type fakeInspector bool

func (f fakeInspector) Detect([]byte) bool                   { return bool(f) }
func (f fakeInspector) ExtractPayload([]byte) (string, bool) { return "", bool(f) }

func TestLocalOracle_Validate(t *testing.T) {
	nopLogger := zerolog.Nop()

	v, err := NewLocalOracle(fakeInspector(false), &nopLogger).Validate(context.Background(), "a.png", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Verdict{Valid: true}, v)

	v, err = NewLocalOracle(fakeInspector(true), &nopLogger).Validate(context.Background(), "a.png", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Verdict{Reason: ReasonSteganography}, v)
}

// staticOracle always answers the same.
type staticOracle struct {
	verdict domain.Verdict
	err     error
	calls   int
}

func (s *staticOracle) Validate(context.Context, string, []byte) (domain.Verdict, error) {
	s.calls++
	return s.verdict, s.err
}

func TestChain(t *testing.T) {
	ctx := context.Background()

	valid := &staticOracle{verdict: domain.Verdict{Valid: true}}
	refuse := &staticOracle{verdict: domain.Verdict{Reason: ReasonAIGenerated}}
	after := &staticOracle{verdict: domain.Verdict{Valid: true}}

	v, err := Chain(valid, refuse, after).Validate(ctx, "a.png", nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonAIGenerated, v.Reason)
	assert.Equal(t, 0, after.calls, "chain must stop at the first refusal")

	v, err = Chain(valid, &staticOracle{}).Validate(ctx, "a.png", nil)
	require.NoError(t, err)
	assert.False(t, v.Valid)

	v, err = Chain().Validate(ctx, "a.png", nil)
	require.NoError(t, err)
	assert.False(t, v.Valid)
}
