// Package sponge implements the Hades252 sponge hash
package sponge

import (
	"errors"
	"fmt"

	"github.com/aerius-labs/hades252-go/field"
	"github.com/aerius-labs/hades252-go/hades"
)

// DefaultMaxInputs bounds the number of elements a Hash absorbs unless
// WithMaxInputs says otherwise
const DefaultMaxInputs = 1024

// Size is the digest length in bytes
const Size = field.ByteLen

var (
	// ErrCapacityExceeded is returned when an input would go past the maximum input count
	ErrCapacityExceeded = errors.New("sponge: exceeded maximum input count")
	// ErrFinalized is returned when a Hash is used after Result
	ErrFinalized = errors.New("sponge: hash already finalized")
)

// Option configures a Hash
type Option func(*Hash)

// WithMaxInputs sets the maximum number of elements the Hash accepts
func WithMaxInputs(n int) Option {
	return func(h *Hash) {
		h.maxInputs = n
	}
}

// WithPermutation sets the permutation used by the Hash
func WithPermutation(p *hades.Permutation) Option {
	return func(h *Hash) {
		h.perm = p
	}
}

// Hash absorbs field elements into a Hades252 state, hades.Rate at a time.
// A Hash is not safe for concurrent use.
type Hash struct {
	perm      *hades.Permutation
	maxInputs int

	state     hades.State
	buf       []field.Element
	count     int
	finalized bool
}

// New creates an empty Hash
func New(opts ...Option) *Hash {
	h := &Hash{
		maxInputs: DefaultMaxInputs,
		buf:       make([]field.Element, 0, hades.Rate),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.perm == nil {
		h.perm = hades.New()
	}
	return h
}

// Input absorbs one element
func (h *Hash) Input(e field.Element) error {
	if h.finalized {
		return ErrFinalized
	}
	if h.count+1 > h.maxInputs {
		return fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, h.maxInputs)
	}
	h.count++
	h.buf = append(h.buf, e)
	if len(h.buf) == hades.Rate {
		h.absorbBlock()
	}
	return nil
}

// InputBytes decodes a canonical 32-byte element and absorbs it
func (h *Hash) InputBytes(b []byte) error {
	if h.finalized {
		return ErrFinalized
	}
	e, err := field.FromBytes(b)
	if err != nil {
		return fmt.Errorf("sponge: decoding input: %w", err)
	}
	return h.Input(e)
}

// InputMessage maps an arbitrary byte string onto the field and absorbs it
func (h *Hash) InputMessage(msg []byte) error {
	if h.finalized {
		return ErrFinalized
	}
	return h.Input(field.HashToField(msg))
}

// Result pads and absorbs any pending elements, finalizes the Hash and
// returns the encoding of the first rate element. Only the first call
// succeeds, later calls return ErrFinalized.
func (h *Hash) Result() ([]byte, error) {
	if h.finalized {
		return nil, ErrFinalized
	}
	if len(h.buf) > 0 || h.count == 0 {
		for len(h.buf) < hades.Rate {
			h.buf = append(h.buf, field.Zero())
		}
		h.absorbBlock()
	}
	h.finalized = true
	return field.ToBytes(h.state[hades.Capacity]), nil
}

// Reset returns the Hash to its empty state, keeping its options
func (h *Hash) Reset() {
	h.state = hades.State{}
	h.buf = h.buf[:0]
	h.count = 0
	h.finalized = false
}

// Count returns the number of elements absorbed so far
func (h *Hash) Count() int {
	return h.count
}

// Buffered returns the number of elements waiting for the next permutation
func (h *Hash) Buffered() int {
	return len(h.buf)
}

// Finalized reports whether Result has been called
func (h *Hash) Finalized() bool {
	return h.finalized
}

// MaxInputs returns the maximum number of elements the Hash accepts
func (h *Hash) MaxInputs() int {
	return h.maxInputs
}

// absorbBlock adds a full buffer into the rate positions and permutes
func (h *Hash) absorbBlock() {
	for i, e := range h.buf {
		pos := hades.Capacity + i
		h.state[pos].Add(&h.state[pos], &e)
	}
	h.perm.Permute(&h.state)
	h.buf = h.buf[:0]
}

// Sum hashes elems with a fresh Hash
func Sum(elems ...field.Element) ([]byte, error) {
	h := New(WithMaxInputs(len(elems)))
	for _, e := range elems {
		if err := h.Input(e); err != nil {
			return nil, err
		}
	}
	return h.Result()
}

// SumMessages hashes each message onto the field and hashes the results
func SumMessages(msgs ...[]byte) ([]byte, error) {
	h := New(WithMaxInputs(len(msgs)))
	for _, m := range msgs {
		if err := h.InputMessage(m); err != nil {
			return nil, err
		}
	}
	return h.Result()
}
