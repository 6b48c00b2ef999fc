package hades

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aerius-labs/hades252-go/field"
)

// ErrRoundOutOfRange is returned for a round index outside [0, TotalRounds)
var ErrRoundOutOfRange = errors.New("hades: round out of range")

var (
	roundConstantsOnce sync.Once
	roundConstants     [NumConstants]Element
)

// GenerateRoundConstants derives n constants from seed. The first constant is
// the seed hashed onto the field, every following one is the encoding of its
// predecessor hashed onto the field.
func GenerateRoundConstants(seed []byte, n int) []Element {
	constants := make([]Element, n)
	input := seed
	for i := 0; i < n; i++ {
		constants[i] = field.HashToField(input)
		input = field.ToBytes(constants[i])
	}
	return constants
}

// sharedRoundConstants returns the process-wide table. It must not be written to.
func sharedRoundConstants() *[NumConstants]Element {
	roundConstantsOnce.Do(func() {
		copy(roundConstants[:], GenerateRoundConstants([]byte(Seed), NumConstants))
	})
	return &roundConstants
}

// RoundConstants returns a copy of the round constants table
func RoundConstants() [NumConstants]Element {
	return *sharedRoundConstants()
}

// RoundConstantsAt returns the Width constants added in the given round
func RoundConstantsAt(round int) ([Width]Element, error) {
	var out [Width]Element
	if round < 0 || round >= TotalRounds {
		return out, fmt.Errorf("%w: %d not in [0, %d)", ErrRoundOutOfRange, round, TotalRounds)
	}
	copy(out[:], sharedRoundConstants()[round*Width:(round+1)*Width])
	return out, nil
}
