// Package lsb packs a length-prefixed byte payload into the low bits of a
// carrier buffer and reads it back.
//
// Frame layout, one stream bit per carrier byte with the default codec:
//
//	carrier[0:32]        32-bit big-endian payload length L
//	carrier[32:32+8L]    payload bytes, most significant bit first
//	carrier[32+8L:]      untouched
//
// A codec using n low bits per byte packs the same bit stream n bits at a
// time, the earliest stream bit in the highest of the n bits.
package lsb

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/policy"
	"fmt"
	"math"
)

// HeaderBits is the size of the length header in stream bits.
const HeaderBits = policy.HeaderBits

// Codec embeds and extracts frames. It has no mutable state.
type Codec struct {
	bits int
}

// Default uses only the least-significant bit of every carrier byte.
var Default = &Codec{bits: 1}

// New returns a codec that uses bitsPerByte low bits of every carrier byte.
func New(bitsPerByte int) (*Codec, error) {
	if bitsPerByte < 1 || bitsPerByte > 8 {
		return nil, fmt.Errorf("bits per byte must be in [1,8], got %d", bitsPerByte)
	}
	return &Codec{bits: bitsPerByte}, nil
}

// BitsPerByte reports how many low bits of each carrier byte are used.
func (c *Codec) BitsPerByte() int {
	return c.bits
}

// Capacity returns the largest payload, in bytes, a carrier of carrierLen
// bytes can hold.
func (c *Codec) Capacity(carrierLen int) int {
	free := carrierLen*c.bits - HeaderBits
	if free < 0 {
		return 0
	}
	return free / 8
}

// Embed returns a copy of carrier with payload framed into its low bits.
// carrier is never modified.
func (c *Codec) Embed(carrier, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds header range", domain.ErrCapacity, len(payload))
	}
	if err := policy.CheckCapacity(len(carrier), c.bits, len(payload)); err != nil {
		return nil, err
	}

	out := make([]byte, len(carrier))
	copy(out, carrier)

	w := bitWriter{codec: c, buf: out}
	length := uint32(len(payload))
	for i := 0; i < HeaderBits; i++ {
		w.write(byte(length>>(31-i)) & 1)
	}
	for _, b := range payload {
		for k := 0; k < 8; k++ {
			w.write((b >> (7 - k)) & 1)
		}
	}
	return out, nil
}

// Extract reads a frame from carrier and returns its payload bytes.
func (c *Codec) Extract(carrier []byte) ([]byte, error) {
	if err := policy.CheckHeader(len(carrier), c.bits); err != nil {
		return nil, err
	}

	r := bitReader{codec: c, buf: carrier}
	var length uint32
	for i := 0; i < HeaderBits; i++ {
		length = length<<1 | uint32(r.read())
	}

	if err := policy.CheckCapacity(len(carrier), c.bits, int(length)); err != nil {
		return nil, fmt.Errorf("header claims %d bytes: %w", length, err)
	}

	payload := make([]byte, length)
	for j := range payload {
		var b byte
		for k := 0; k < 8; k++ {
			b = b<<1 | r.read()
		}
		payload[j] = b
	}
	return payload, nil
}

// bitWriter writes stream bits into consecutive carrier bytes.
type bitWriter struct {
	codec *Codec
	buf   []byte
	pos   int
}

func (w *bitWriter) write(bit byte) {
	idx, shift := w.codec.locate(w.pos)
	w.buf[idx] = w.buf[idx]&^(1<<shift) | bit<<shift
	w.pos++
}

type bitReader struct {
	codec *Codec
	buf   []byte
	pos   int
}

func (r *bitReader) read() byte {
	idx, shift := r.codec.locate(r.pos)
	r.pos++
	return (r.buf[idx] >> shift) & 1
}

// locate maps a stream bit to its carrier byte and bit position.
func (c *Codec) locate(streamBit int) (int, uint) {
	return streamBit / c.bits, uint(c.bits - 1 - streamBit%c.bits)
}
