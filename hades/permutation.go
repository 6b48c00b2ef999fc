package hades

import (
	"errors"
	"fmt"

	"github.com/aerius-labs/hades252-go/field"
)

// ErrInputFull is returned when more than Width elements are loaded into a state
var ErrInputFull = errors.New("hades: input exceeds permutation width")

// Permutation applies Hades252 using the shared round constants and MDS matrix.
// It holds no mutable state and is safe for concurrent use.
type Permutation struct {
	constants *[NumConstants]Element
	matrix    *Matrix
	schedule  *[TotalRounds]RoundKind
}

// New creates a permutation bound to the shared tables
func New() *Permutation {
	return &Permutation{
		constants: sharedRoundConstants(),
		matrix:    sharedMDS(),
		schedule:  &schedule,
	}
}

// Permute applies the permutation in place
func (p *Permutation) Permute(state *State) {
	for r := 0; r < TotalRounds; r++ {
		p.addRoundConstants(state, r)
		switch p.schedule[r] {
		case FullRound:
			for i := range state {
				state[i] = SBox(state[i])
			}
		case PartialRound:
			state[0] = SBox(state[0])
		}
		*state = p.matrix.MulVector(state)
	}
}

// PermuteNew applies the permutation and returns a new state
func (p *Permutation) PermuteNew(state State) State {
	p.Permute(&state)
	return state
}

// PermuteInputs loads up to Width elements into a zero state, left-aligned,
// and permutes it
func (p *Permutation) PermuteInputs(inputs ...Element) (State, error) {
	var state State
	if len(inputs) > Width {
		return state, fmt.Errorf("%w: %d elements, width %d", ErrInputFull, len(inputs), Width)
	}
	copy(state[:], inputs)
	p.Permute(&state)
	return state, nil
}

// Width returns the permutation width
func (p *Permutation) Width() int {
	return Width
}

func (p *Permutation) addRoundConstants(state *State, round int) {
	c := p.constants[round*Width : (round+1)*Width]
	for i := range state {
		state[i].Add(&state[i], &c[i])
	}
}

// SBox is field inversion, extended with SBox(0) = 0
func SBox(x Element) Element {
	return field.Inverse(x)
}
