package hades

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aerius-labs/hades252-go/field"
)

var (
	// ErrCauchyLength is returned when a Cauchy point sequence is not Width long
	ErrCauchyLength = errors.New("hades: cauchy points must have one entry per state position")
	// ErrDuplicateCauchyPoint is returned when the x or y points are not all distinct
	ErrDuplicateCauchyPoint = errors.New("hades: cauchy points must be distinct")
	// ErrZeroDenominator is returned when x_i + y_j = 0 for some i, j
	ErrZeroDenominator = errors.New("hades: cauchy denominator is zero")
)

// Matrix is a Width x Width matrix over the field
type Matrix [Width][Width]Element

var (
	mdsOnce sync.Once
	mds     Matrix
)

// CauchyPoints returns the fixed x and y sequences of the MDS matrix:
// x_i = i and y_j = Width + j.
func CauchyPoints() (xs, ys []Element) {
	xs = make([]Element, Width)
	ys = make([]Element, Width)
	for i := 0; i < Width; i++ {
		xs[i] = field.NewElement(uint64(i))
		ys[i] = field.NewElement(uint64(i + Width))
	}
	return xs, ys
}

// GenerateMDS builds the Cauchy matrix M[i][j] = (x_i + y_j)^-1
func GenerateMDS(xs, ys []Element) (Matrix, error) {
	var m Matrix
	if len(xs) != Width || len(ys) != Width {
		return m, fmt.Errorf("%w: got %d and %d", ErrCauchyLength, len(xs), len(ys))
	}

	// Any repeated point makes two rows or two columns equal
	all := make([]Element, 0, 2*Width)
	all = append(all, xs...)
	all = append(all, ys...)
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if field.Equal(all[i], all[j]) {
				return m, fmt.Errorf("%w: positions %d and %d", ErrDuplicateCauchyPoint, i, j)
			}
		}
	}

	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			sum := field.Add(xs[i], ys[j])
			if field.IsZero(sum) {
				return m, fmt.Errorf("%w: x[%d] + y[%d]", ErrZeroDenominator, i, j)
			}
			m[i][j] = field.Inverse(sum)
		}
	}
	return m, nil
}

// sharedMDS returns the process-wide matrix. It must not be written to.
func sharedMDS() *Matrix {
	mdsOnce.Do(func() {
		m, err := GenerateMDS(CauchyPoints())
		if err != nil {
			panic("invalid fixed MDS parameters: " + err.Error())
		}
		mds = m
	})
	return &mds
}

// MDS returns a copy of the permutation's linear layer
func MDS() Matrix {
	return *sharedMDS()
}

// MulVector returns m × v
func (m *Matrix) MulVector(v *State) State {
	var out State
	var prod Element
	for i := 0; i < Width; i++ {
		acc := field.Zero()
		for j := 0; j < Width; j++ {
			prod.Multiply(&m[i][j], &v[j])
			acc.Add(&acc, &prod)
		}
		out[i] = acc
	}
	return out
}

// IsMDS reports whether every square submatrix of m is non-singular
func IsMDS(m Matrix) bool {
	for size := 1; size <= Width; size++ {
		rowSets := combinations(Width, size)
		colSets := combinations(Width, size)
		for _, rows := range rowSets {
			for _, cols := range colSets {
				sub := make([][]Element, size)
				for i, r := range rows {
					sub[i] = make([]Element, size)
					for j, c := range cols {
						sub[i][j] = m[r][c]
					}
				}
				if field.IsZero(determinant(sub)) {
					return false
				}
			}
		}
	}
	return true
}

// determinant computes det(a) by Gaussian elimination. a is overwritten.
func determinant(a [][]Element) Element {
	n := len(a)
	det := field.One()
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if !field.IsZero(a[r][col]) {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return field.Zero()
		}
		if pivot != col {
			a[pivot], a[col] = a[col], a[pivot]
			det = field.Sub(field.Zero(), det)
		}
		det = field.Mul(det, a[col][col])
		inv := field.Inverse(a[col][col])
		for r := col + 1; r < n; r++ {
			factor := field.Mul(a[r][col], inv)
			for c := col; c < n; c++ {
				a[r][c] = field.Sub(a[r][c], field.Mul(factor, a[col][c]))
			}
		}
	}
	return det
}

// combinations lists every k-subset of {0..n-1} in lexicographic order
func combinations(n, k int) [][]int {
	var out [][]int
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			c := make([]int, k)
			copy(c, idx)
			out = append(out, c)
			return
		}
		for i := start; i < n; i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
