// Package hades implements the Hades252 permutation over the ed25519 scalar field
package hades

import "github.com/aerius-labs/hades252-go/field"

// Parameter set. Changing any of these changes every digest.
const (
	// Width is the number of field elements in the state
	Width = 6

	// FullRounds is the total number of full rounds, split evenly
	// between the start and the end of the schedule
	FullRounds = 8

	// PartialRounds is the number of partial rounds in the middle
	PartialRounds = 127

	// TotalRounds is FullRounds + PartialRounds
	TotalRounds = FullRounds + PartialRounds

	// NumConstants is one round constant per state position per round
	NumConstants = TotalRounds * Width

	// Rate is the number of state positions that absorb input
	Rate = Width - Capacity

	// Capacity is the number of reserved state positions
	Capacity = 1

	// Seed is the input to the round constant chain
	Seed = "hades252"
)

// Element is an ed25519 scalar field element
type Element = field.Element

// State is the permutation state. Position 0 is the capacity slot.
type State [Width]Element
