package hades

import (
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/aerius-labs/hades252-go/field"
	"github.com/aerius-labs/hades252-go/internal/prf"
)

func TestParameterSet(t *testing.T) {
	if NumConstants != 810 {
		t.Errorf("NumConstants = %d, want 810", NumConstants)
	}
	if TotalRounds != 135 {
		t.Errorf("TotalRounds = %d, want 135", TotalRounds)
	}
	if Rate != 5 || Capacity != 1 {
		t.Errorf("rate/capacity = %d/%d, want 5/1", Rate, Capacity)
	}
}

func TestRoundConstantsChain(t *testing.T) {
	constants := RoundConstants()
	if len(constants) != NumConstants {
		t.Fatalf("got %d constants, want %d", len(constants), NumConstants)
	}

	first := field.HashToField([]byte(Seed))
	if !field.Equal(constants[0], first) {
		t.Fatal("constant[0] is not the seed hashed onto the field")
	}
	for i := 1; i < NumConstants; i++ {
		next := field.HashToField(field.ToBytes(constants[i-1]))
		if !field.Equal(constants[i], next) {
			t.Fatalf("constant[%d] does not follow from constant[%d]", i, i-1)
		}
	}
}

func TestRoundConstantsStable(t *testing.T) {
	a := GenerateRoundConstants([]byte(Seed), NumConstants)
	b := RoundConstants()
	for i := range a {
		if !field.Equal(a[i], b[i]) {
			t.Fatalf("constant %d differs between runs", i)
		}
	}

	// A prefix of a longer chain is the shorter chain
	short := GenerateRoundConstants([]byte(Seed), 10)
	for i := range short {
		if !field.Equal(short[i], a[i]) {
			t.Fatalf("prefix mismatch at %d", i)
		}
	}

	other := GenerateRoundConstants([]byte("other seed"), 1)
	if field.Equal(other[0], a[0]) {
		t.Fatal("different seeds produced the same first constant")
	}
}

func TestRoundConstantsCopy(t *testing.T) {
	c := RoundConstants()
	c[0] = field.Zero()
	if field.IsZero(RoundConstants()[0]) {
		t.Fatal("mutating a returned table changed the shared constants")
	}

	r, err := RoundConstantsAt(TotalRounds - 1)
	if err != nil {
		t.Fatalf("RoundConstantsAt failed: %v", err)
	}
	all := RoundConstants()
	for i := 0; i < Width; i++ {
		if !field.Equal(r[i], all[NumConstants-Width+i]) {
			t.Fatalf("last round constant %d mismatch", i)
		}
	}
}

func TestRoundConstantsAtRange(t *testing.T) {
	for _, round := range []int{-1, TotalRounds, TotalRounds + 10} {
		if _, err := RoundConstantsAt(round); !errors.Is(err, ErrRoundOutOfRange) {
			t.Errorf("round %d: got %v, want ErrRoundOutOfRange", round, err)
		}
	}
	if _, err := RoundConstantsAt(0); err != nil {
		t.Errorf("round 0 rejected: %v", err)
	}
}

// Encodings are little-endian, as produced by field.ToBytes
var goldenValues = []struct {
	name string
	got  func() Element
	want string
}{
	{"Constant0", func() Element { return RoundConstants()[0] },
		"bc07db706c01ad7b94cf99c37e0a3530589d205fbbb6dc89559b023fd696140b"},
	{"Constant809", func() Element { return RoundConstants()[NumConstants-1] },
		"2628bc30f48d7b17833fb4064453ae85152c41e5c23ebe6b6ed924973c14a80c"},
	{"MDS00", func() Element { return MDS()[0][0] },
		"9b3022f895520ff40758ce8739d0b9665555555555555555555555555555550d"},
}

func TestGoldenValues(t *testing.T) {
	for _, tc := range goldenValues {
		t.Run(tc.name, func(t *testing.T) {
			if got := hex.EncodeToString(field.ToBytes(tc.got())); got != tc.want {
				t.Fatalf("mismatch\nGot:      %s\nExpected: %s", got, tc.want)
			}
		})
	}
}

func TestPermuteZeroState(t *testing.T) {
	expected := [Width]string{
		"46475a45df34e3d55320a2d9f81371e15ac9fe97259e4102b66ad5bd06000909",
		"9f5c8f2fc0358eb01cb935f856b0a31248301b29318b1eb5260e366b93fa2208",
		"dccc56636203ad2b04d3f39a5386422f560b497abddc0f8679f1db56daf16f0c",
		"4b14fdff3857e2603ab99f66921537b0a953892b42928c507cfb35b9b12e240e",
		"8a1a3e24435898d8406dc8bf4a916a2a685659e51d99c607973cf2484f253d01",
		"38dc25770bf29f460d815e463f70d7827f182786ca7635de2c73822b3dafe40c",
	}
	var state State
	New().Permute(&state)
	for i := range state {
		if got := hex.EncodeToString(field.ToBytes(state[i])); got != expected[i] {
			t.Errorf("position %d\nGot:      %s\nExpected: %s", i, got, expected[i])
		}
	}
}

func TestSchedule(t *testing.T) {
	s := Schedule()
	full, partial := 0, 0
	for r, k := range s {
		switch {
		case r < 4 || r >= 131:
			if k != FullRound {
				t.Errorf("round %d is %s, want full", r, k)
			}
		default:
			if k != PartialRound {
				t.Errorf("round %d is %s, want partial", r, k)
			}
		}
		if k == FullRound {
			full++
		} else {
			partial++
		}
	}
	if full != FullRounds || partial != PartialRounds {
		t.Fatalf("got %d full and %d partial rounds", full, partial)
	}
}

func TestMDSEntries(t *testing.T) {
	m := MDS()
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			denom := field.NewElement(uint64(i + Width + j))
			if !field.Equal(field.Mul(m[i][j], denom), field.One()) {
				t.Errorf("M[%d][%d] is not 1/(%d)", i, j, i+Width+j)
			}
		}
	}
}

func TestMDSProperty(t *testing.T) {
	if !IsMDS(MDS()) {
		t.Fatal("generated matrix has a singular square submatrix")
	}

	// Two equal columns make a singular 2x2 submatrix
	m := MDS()
	for i := 0; i < Width; i++ {
		m[i][1] = m[i][0]
	}
	if IsMDS(m) {
		t.Fatal("matrix with repeated column reported as MDS")
	}

	var zero Matrix
	if IsMDS(zero) {
		t.Fatal("zero matrix reported as MDS")
	}
}

func TestGenerateMDSRejects(t *testing.T) {
	xs, ys := CauchyPoints()

	dupX := append([]Element(nil), xs...)
	dupX[3] = dupX[2]

	shared := append([]Element(nil), ys...)
	shared[0] = xs[5]

	// x_0 = 100 and y_0 = -100 sum to zero
	negX := append([]Element(nil), xs...)
	negX[0] = field.NewElement(100)
	negY := append([]Element(nil), ys...)
	negY[0] = field.Sub(field.Zero(), field.NewElement(100))

	testCases := []struct {
		name string
		xs   []Element
		ys   []Element
		err  error
	}{
		{"Short", xs[:5], ys, ErrCauchyLength},
		{"DuplicateX", dupX, ys, ErrDuplicateCauchyPoint},
		{"SharedPoint", xs, shared, ErrDuplicateCauchyPoint},
		{"ZeroDenominator", negX, negY, ErrZeroDenominator},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateMDS(tc.xs, tc.ys)
			if !errors.Is(err, tc.err) {
				t.Fatalf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestSBox(t *testing.T) {
	if !field.IsZero(SBox(field.Zero())) {
		t.Fatal("SBox(0) must be 0")
	}
	stream := prf.NewShakeToField([]byte("sbox"))
	for i := 0; i < 32; i++ {
		x := stream.Next()
		y := SBox(x)
		if !field.Equal(field.Mul(x, y), field.One()) {
			t.Fatalf("SBox(x) is not x^-1 at sample %d", i)
		}
		if !field.Equal(SBox(y), x) {
			t.Fatalf("SBox is not an involution at sample %d", i)
		}
	}
}

// reference evaluates the rounds directly from the published tables
func reference(state State) State {
	constants := RoundConstants()
	m := MDS()
	for r := 0; r < TotalRounds; r++ {
		for i := 0; i < Width; i++ {
			state[i] = field.Add(state[i], constants[r*Width+i])
		}
		if r < FullRounds/2 || r >= TotalRounds-FullRounds/2 {
			for i := 0; i < Width; i++ {
				state[i] = field.Inverse(state[i])
			}
		} else {
			state[0] = field.Inverse(state[0])
		}
		var next State
		for i := 0; i < Width; i++ {
			acc := field.Zero()
			for j := 0; j < Width; j++ {
				acc = field.Add(acc, field.Mul(m[i][j], state[j]))
			}
			next[i] = acc
		}
		state = next
	}
	return state
}

func TestPermuteMatchesReference(t *testing.T) {
	perm := New()
	stream := prf.NewShakeToField([]byte("reference"))

	states := []State{{}}
	for n := 0; n < 3; n++ {
		var s State
		for i := range s {
			s[i] = stream.Next()
		}
		states = append(states, s)
	}

	for n, s := range states {
		got := perm.PermuteNew(s)
		want := reference(s)
		for i := 0; i < Width; i++ {
			if !field.Equal(got[i], want[i]) {
				t.Fatalf("state %d position %d mismatch", n, i)
			}
		}
	}
}

func TestPermuteDeterministic(t *testing.T) {
	perm := New()
	var s State
	s[1] = field.NewElement(1)

	a := perm.PermuteNew(s)
	b := perm.PermuteNew(s)
	if a != b {
		t.Fatal("same input produced different outputs")
	}
	if a == s {
		t.Fatal("permutation left the state unchanged")
	}

	var flipped State
	flipped[2] = field.NewElement(1)
	if perm.PermuteNew(flipped) == a {
		t.Fatal("different inputs produced the same output")
	}
}

func TestPermuteInPlace(t *testing.T) {
	perm := New()
	var s State
	s[0] = field.NewElement(42)
	want := perm.PermuteNew(s)
	perm.Permute(&s)
	if s != want {
		t.Fatal("Permute and PermuteNew disagree")
	}
}

func TestPermuteInputs(t *testing.T) {
	perm := New()
	if perm.Width() != Width {
		t.Fatalf("Width() = %d", perm.Width())
	}

	inputs := []Element{field.NewElement(1), field.NewElement(2)}
	got, err := perm.PermuteInputs(inputs...)
	if err != nil {
		t.Fatalf("PermuteInputs failed: %v", err)
	}
	var s State
	s[0], s[1] = inputs[0], inputs[1]
	if got != perm.PermuteNew(s) {
		t.Fatal("PermuteInputs does not left-align its inputs")
	}

	tooMany := make([]Element, Width+1)
	if _, err := perm.PermuteInputs(tooMany...); !errors.Is(err, ErrInputFull) {
		t.Fatalf("got %v, want ErrInputFull", err)
	}
}

func TestPermuteConcurrent(t *testing.T) {
	var s State
	s[3] = field.NewElement(3)
	want := New().PermuteNew(s)

	var wg sync.WaitGroup
	results := make([]State, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = New().PermuteNew(s)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r != want {
			t.Fatalf("goroutine %d produced a different output", i)
		}
	}
}

func BenchmarkPermute(b *testing.B) {
	perm := New()
	var s State
	for i := 0; i < b.N; i++ {
		perm.Permute(&s)
	}
}
