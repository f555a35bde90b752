package policy

import (
	"StegoGuard/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCapacity(t *testing.T) {
	assert.NoError(t, CheckCapacity(32+8*10, 1, 10))
	assert.ErrorIs(t, CheckCapacity(32+8*10-1, 1, 10), domain.ErrCapacity)
	assert.NoError(t, CheckCapacity(56, 2, 10))
	assert.ErrorIs(t, CheckCapacity(4, 1, 0), domain.ErrCapacity)
}

func TestCheckHeader(t *testing.T) {
	assert.NoError(t, CheckHeader(32, 1))
	assert.ErrorIs(t, CheckHeader(31, 1), domain.ErrFormat)
	assert.NoError(t, CheckHeader(16, 2))
}

func TestCheckFields(t *testing.T) {
	assert.NoError(t, CheckFields("42", "user@example.com"))
	assert.ErrorIs(t, CheckFields("", "user@example.com"), domain.ErrShape)
	assert.ErrorIs(t, CheckFields("42", ""), domain.ErrShape)
	assert.ErrorIs(t, CheckFields("4|2", "user@example.com"), domain.ErrShape)
	assert.ErrorIs(t, CheckFields("42", "a|b@example.com"), domain.ErrShape)
}

func TestValidatePayload(t *testing.T) {
	testCases := []struct {
		name      string
		plaintext string
		kind      Kind
		wantErr   bool
	}{
		{name: "numeric id and email", plaintext: "42|user@example.com", kind: KindEmail},
		{name: "uuid id and email", plaintext: "8a5c6a5e-5b7f-4a8e-9e0c-0b5b4a3f2e1d|user@example.com", kind: KindAny},
		{name: "unix timestamp", plaintext: "42|1700000000", kind: KindTimestamp},
		{name: "rfc3339 timestamp", plaintext: "42|2024-05-01T12:00:00.123Z", kind: KindTimestamp},
		{name: "any accepts timestamp", plaintext: "42|1700000000", kind: KindAny},
		{name: "one field", plaintext: "42", kind: KindAny, wantErr: true},
		{name: "three fields", plaintext: "42|a@b.com|x", kind: KindAny, wantErr: true},
		{name: "zero id", plaintext: "0|user@example.com", kind: KindAny, wantErr: true},
		{name: "word id", plaintext: "bob|user@example.com", kind: KindAny, wantErr: true},
		{name: "email expected, timestamp given", plaintext: "42|1700000000", kind: KindEmail, wantErr: true},
		{name: "timestamp expected, email given", plaintext: "42|user@example.com", kind: KindTimestamp, wantErr: true},
		{name: "at sign is not enough", plaintext: "42|@", kind: KindEmail, wantErr: true},
		{name: "negative timestamp", plaintext: "42|-5", kind: KindTimestamp, wantErr: true},
		{name: "empty", plaintext: "", kind: KindAny, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ValidatePayload(tc.plaintext, tc.kind)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrShape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, p.String())
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("timestamp")
	require.NoError(t, err)
	assert.Equal(t, KindTimestamp, k)

	k, err = ParseKind("identity")
	require.NoError(t, err)
	assert.Equal(t, KindEmail, k)

	_, err = ParseKind("bogus")
	assert.Error(t, err)
}
