// Package field implements the ed25519 scalar field using filippo.io/edwards25519
package field

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
)

// ByteLen is the length of a canonical element encoding
const ByteLen = 32

// Modulus is 2^252 + 27742317777372353535851937790883648493
var Modulus = modulus()

func modulus() *big.Int {
	offset, ok := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	if !ok {
		panic("field: invalid modulus offset")
	}
	p := new(big.Int).Lsh(big.NewInt(1), 252)
	return p.Add(p, offset)
}

var (
	// ErrWrongLength is returned when an encoding is not ByteLen bytes long
	ErrWrongLength = errors.New("field: wrong encoding length")
	// ErrNonCanonical is returned when an encoding is not reduced modulo the prime
	ErrNonCanonical = errors.New("field: non-canonical encoding")
)

// Element represents a field element
type Element = edwards25519.Scalar

// NewElement creates a new field element
func NewElement(v uint64) Element {
	var b [ByteLen]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	var e Element
	if _, err := e.SetCanonicalBytes(b[:]); err != nil {
		// a uint64 is always below the modulus
		panic("field: " + err.Error())
	}
	return e
}

// Zero returns the zero element
func Zero() Element {
	return *edwards25519.NewScalar()
}

// One returns the one element
func One() Element {
	return NewElement(1)
}

// FromBytes decodes a canonical little-endian encoding
func FromBytes(b []byte) (Element, error) {
	var e Element
	if len(b) != ByteLen {
		return e, fmt.Errorf("%w: got %d bytes, want %d", ErrWrongLength, len(b), ByteLen)
	}
	if _, err := e.SetCanonicalBytes(b); err != nil {
		return e, ErrNonCanonical
	}
	return e, nil
}

// ToBytes converts element to bytes (little-endian)
func ToBytes(e Element) []byte {
	return e.Bytes()
}

// ToBigInt converts to big.Int
func ToBigInt(e Element) *big.Int {
	le := e.Bytes()
	be := make([]byte, len(le))
	for i := range le {
		be[len(le)-1-i] = le[i]
	}
	return new(big.Int).SetBytes(be)
}

// HashToField maps an arbitrary byte string onto the field by reducing its
// SHA-512 digest modulo the prime
func HashToField(msg []byte) Element {
	digest := sha512.Sum512(msg)
	var e Element
	if _, err := e.SetUniformBytes(digest[:]); err != nil {
		// SetUniformBytes only fails on inputs that are not 64 bytes
		panic("field: " + err.Error())
	}
	return e
}

// Add returns a + b
func Add(a, b Element) Element {
	var r Element
	r.Add(&a, &b)
	return r
}

// Mul returns a * b
func Mul(a, b Element) Element {
	var r Element
	r.Multiply(&a, &b)
	return r
}

// Sub returns a - b
func Sub(a, b Element) Element {
	var r Element
	r.Subtract(&a, &b)
	return r
}

// Inverse returns a^-1, or zero when a is zero
func Inverse(a Element) Element {
	if IsZero(a) {
		return Zero()
	}
	var r Element
	r.Invert(&a)
	return r
}

// IsZero reports whether a is the zero element
func IsZero(a Element) bool {
	z := Zero()
	return a.Equal(&z) == 1
}

// Equal reports whether a and b are the same element
func Equal(a, b Element) bool {
	return a.Equal(&b) == 1
}
