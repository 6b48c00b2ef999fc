// Package prf derives reproducible streams of field elements from a key
package prf

import (
	"golang.org/x/crypto/sha3"

	"github.com/aerius-labs/hades252-go/field"
)

// bytesPerElement is wide enough that reducing it modulo the prime leaves a
// negligible bias
const bytesPerElement = 64

// Domain separator for the field stream
var shakeToFieldDomainSep = []byte{
	0xae, 0xae, 0x22, 0xff, 0x00, 0x01, 0xfa, 0xff,
	0x21, 0xaf, 0x12, 0x00, 0x01, 0x11, 0xff, 0x00,
}

// ShakeToField reads field elements from SHAKE128(domain_sep || key)
type ShakeToField struct {
	shake sha3.ShakeHash
}

// NewShakeToField creates a stream keyed with key
func NewShakeToField(key []byte) *ShakeToField {
	shake := sha3.NewShake128()
	shake.Write(shakeToFieldDomainSep)
	shake.Write(key)
	return &ShakeToField{shake: shake}
}

// Next returns the next element of the stream
func (s *ShakeToField) Next() field.Element {
	var buf [bytesPerElement]byte
	// reading from a SHAKE instance never fails
	s.shake.Read(buf[:])

	var e field.Element
	if _, err := e.SetUniformBytes(buf[:]); err != nil {
		panic("prf: " + err.Error())
	}
	return e
}

// Elements returns the next n elements of the stream
func (s *ShakeToField) Elements(n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}
