// Package policy holds the pre-embedding capacity checks and the
// post-extraction shape checks of the signing engine. Both are pure
// predicates so every call site applies them the same way.
package policy

import (
	"StegoGuard/internal/core/domain"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// HeaderBits is the size of the frame length header.
const HeaderBits = 32

// Kind is the expected semantic type of a payload's secondary field.
type Kind int

const (
	// KindAny accepts an email or a timestamp.
	KindAny Kind = iota
	// KindEmail expects an email address.
	KindEmail
	// KindTimestamp expects unix seconds or an RFC 3339 instant.
	KindTimestamp
)

// ParseKind maps a config value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return KindAny, nil
	case "email", "identity":
		return KindEmail, nil
	case "timestamp":
		return KindTimestamp, nil
	default:
		return KindAny, fmt.Errorf("unknown payload kind %q", s)
	}
}

var validate = validator.New()

// CheckHeader fails with ErrFormat when a carrier cannot hold a header.
func CheckHeader(carrierLen, bitsPerByte int) error {
	if carrierLen*bitsPerByte < HeaderBits {
		return fmt.Errorf("%w: %d bytes hold %d bits, header needs %d",
			domain.ErrFormat, carrierLen, carrierLen*bitsPerByte, HeaderBits)
	}
	return nil
}

// CheckCapacity fails with ErrCapacity when header plus payloadLen bytes
// do not fit in the carrier. Exact fit is allowed.
func CheckCapacity(carrierLen, bitsPerByte, payloadLen int) error {
	need := uint64(HeaderBits) + uint64(payloadLen)*8
	have := uint64(carrierLen) * uint64(bitsPerByte)
	if need > have {
		return fmt.Errorf("%w: need %d bits, carrier has %d", domain.ErrCapacity, need, have)
	}
	return nil
}

// CheckFields validates raw fields before they are joined into a payload.
func CheckFields(identifier, secondary string) error {
	if identifier == "" || secondary == "" {
		return fmt.Errorf("%w: empty field", domain.ErrShape)
	}
	if strings.Contains(identifier, domain.PayloadDelimiter) || strings.Contains(secondary, domain.PayloadDelimiter) {
		return fmt.Errorf("%w: field contains %q", domain.ErrShape, domain.PayloadDelimiter)
	}
	return nil
}

// ValidatePayload checks that a decrypted plaintext is a two-field payload
// whose identifier parses and whose secondary field matches kind.
func ValidatePayload(plaintext string, kind Kind) (domain.Payload, error) {
	p, ok := domain.SplitPayload(plaintext)
	if !ok {
		return domain.Payload{}, fmt.Errorf("%w: expected 2 fields", domain.ErrShape)
	}
	if err := CheckFields(p.Identifier, p.Secondary); err != nil {
		return domain.Payload{}, err
	}
	if !isIdentifier(p.Identifier) {
		return domain.Payload{}, fmt.Errorf("%w: bad identifier", domain.ErrShape)
	}

	var valid bool
	switch kind {
	case KindEmail:
		valid = isEmail(p.Secondary)
	case KindTimestamp:
		valid = isTimestamp(p.Secondary)
	default:
		valid = isEmail(p.Secondary) || isTimestamp(p.Secondary)
	}
	if !valid {
		return domain.Payload{}, fmt.Errorf("%w: bad secondary field", domain.ErrShape)
	}
	return p, nil
}

// isIdentifier accepts a positive integer or a UUID.
func isIdentifier(s string) bool {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n > 0
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func isTimestamp(s string) bool {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n > 0
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}
