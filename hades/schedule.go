package hades

// RoundKind tags a round as full or partial
type RoundKind uint8

const (
	// FullRound applies the S-box to every state position
	FullRound RoundKind = iota
	// PartialRound applies the S-box to position 0 only
	PartialRound
)

func (k RoundKind) String() string {
	switch k {
	case FullRound:
		return "full"
	case PartialRound:
		return "partial"
	default:
		return "unknown"
	}
}

var schedule = buildSchedule()

// buildSchedule lays out FullRounds/2 full rounds, PartialRounds partial
// rounds, then FullRounds/2 full rounds
func buildSchedule() [TotalRounds]RoundKind {
	var s [TotalRounds]RoundKind
	for r := 0; r < TotalRounds; r++ {
		if r < FullRounds/2 || r >= FullRounds/2+PartialRounds {
			s[r] = FullRound
		} else {
			s[r] = PartialRound
		}
	}
	return s
}

// Schedule returns the kind of every round, in order
func Schedule() [TotalRounds]RoundKind {
	return schedule
}
