package domain

import "strings"

// PayloadDelimiter separates the two payload fields. It is never escaped.
const PayloadDelimiter = "|"

// Payload is the plaintext hidden inside a carrier before encryption.
type Payload struct {
	Identifier string
	Secondary  string
}

// String renders the payload in its wire shape "<identifier>|<secondary>".
func (p Payload) String() string {
	return p.Identifier + PayloadDelimiter + p.Secondary
}

// SplitPayload splits a plaintext into its fields.
// ok is false unless there are exactly two.
func SplitPayload(plaintext string) (Payload, bool) {
	parts := strings.Split(plaintext, PayloadDelimiter)
	if len(parts) != 2 {
		return Payload{}, false
	}
	return Payload{Identifier: parts[0], Secondary: parts[1]}, true
}
