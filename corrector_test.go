package ngramspell

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/hbollon/go-edlib"
)

func newFixtureCorrector(t *testing.T, opts ...Option) *Corrector {
	t.Helper()
	c, err := NewCorrector(fixtureDictionary(), fixtureModel(t), opts...)
	if err != nil {
		t.Fatalf("NewCorrector: %v", err)
	}
	return c
}

func TestNewCorrectorValidation(t *testing.T) {
	model := fixtureModel(t)
	dict := fixtureDictionary()
	tests := []struct {
		name  string
		dict  *Dictionary
		opts  []Option
		isErr error
	}{
		{"nil dictionary", nil, nil, ErrNilDictionary},
		{"edit distance too high", dict, []Option{WithMaxEditDistance(3)}, nil},
		{"negative edit distance", dict, []Option{WithMaxEditDistance(-1)}, nil},
		{"negative edits length", dict, []Option{WithMaxEditsLength(-1)}, nil},
		{"bad algorithm", dict, []Option{WithDistanceAlgorithm(edlib.Jaro)}, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewCorrector(test.dict, model, test.opts...)
			if err == nil {
				t.Fatalf("NewCorrector returned no error")
			}
			if test.isErr != nil && !errors.Is(err, test.isErr) {
				t.Errorf("error = %v, want %v", err, test.isErr)
			}
		})
	}
	if _, err := NewCorrector(dict, nil); !errors.Is(err, ErrNilModel) {
		t.Errorf("nil model: error = %v, want ErrNilModel", err)
	}
}

func TestCandidatesKnownWord(t *testing.T) {
	c := newFixtureCorrector(t)
	got, err := c.Candidates(context.Background(), "cat")
	if err != nil {
		t.Fatal(err)
	}
	if got.Cardinality() != 1 || !got.Contains("cat") {
		t.Errorf("Candidates('cat') = %v, want {cat}", got)
	}
}

func TestCandidatesTiers(t *testing.T) {
	c := newFixtureCorrector(t)
	tests := []struct {
		word string
		want []string
	}{
		{"sta", []string{"sat", "star", "stay"}}, // one edit
		{"dgo", []string{"dog"}},                  // transposition
		{"mtas", []string{"mat", "star", "stay"}}, // two edits
		{"qzxjkvw", nil},                          // nothing close
	}
	for _, test := range tests {
		got, err := c.Candidates(context.Background(), test.word)
		if err != nil {
			t.Fatal(err)
		}
		terms := got.ToSlice()
		slices.Sort(terms)
		if !slices.Equal(terms, test.want) {
			t.Errorf("Candidates(%q) = %q, want %q", test.word, terms, test.want)
		}
	}
}

func TestCandidatesLimits(t *testing.T) {
	ctx := context.Background()

	onlyKnown := newFixtureCorrector(t, WithMaxEditDistance(0))
	if got, _ := onlyKnown.Candidates(ctx, "sta"); got.Cardinality() != 0 {
		t.Errorf("max distance 0: Candidates('sta') = %v, want empty", got)
	}

	oneEdit := newFixtureCorrector(t, WithMaxEditDistance(1))
	if got, _ := oneEdit.Candidates(ctx, "mtas"); got.Cardinality() != 0 {
		t.Errorf("max distance 1: Candidates('mtas') = %v, want empty", got)
	}

	short := newFixtureCorrector(t, WithMaxEditsLength(3))
	if got, _ := short.Candidates(ctx, "mtas"); got.Cardinality() != 0 {
		t.Errorf("edits length 3: Candidates('mtas') = %v, want empty", got)
	}
	if got, _ := short.Candidates(ctx, "sta"); got.Cardinality() != 3 {
		t.Errorf("edits length 3: Candidates('sta') = %v, want three words", got)
	}
}

func TestCandidatesCancelled(t *testing.T) {
	c := newFixtureCorrector(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Candidates(ctx, "qzxjkvwqzxjkvw")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCorrectPrefersContext(t *testing.T) {
	c := newFixtureCorrector(t)
	got, err := c.Correct(context.Background(), "sta", "the", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Correction != "sat" {
		t.Errorf("Correct('sta' after 'the') = %q, want 'sat'", got.Correction)
	}

	// "stay" is in the dictionary but not in the model, so it scores 0
	want := []string{"sat", "star", "stay"}
	if terms := got.Ranking.Terms(); !slices.Equal(terms, want) {
		t.Errorf("ranking = %q, want %q", terms, want)
	}
	if p := got.Ranking[0].Probability; p != math.Pow(10, -0.7) {
		t.Errorf("P(sat | the) = %v, want %v", p, math.Pow(10, -0.7))
	}
	if p := got.Ranking[2].Probability; p != 0 {
		t.Errorf("P(stay | the) = %v, want 0", p)
	}
	for _, cand := range got.Ranking {
		if cand.Distance != 1 {
			t.Errorf("candidate %q at distance %d, want 1", cand.Term, cand.Distance)
		}
		if cand.Count != fixtureCounts[cand.Term] {
			t.Errorf("candidate %q count %d, want %d", cand.Term, cand.Count, fixtureCounts[cand.Term])
		}
	}
}

func TestCorrectUnknown(t *testing.T) {
	c := newFixtureCorrector(t)
	got, err := c.Correct(context.Background(), "qzxjkvw", "the", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Correction != Unknown {
		t.Errorf("Correct('qzxjkvw') = %q, want %q", got.Correction, Unknown)
	}
	if len(got.Ranking) != 0 {
		t.Errorf("ranking = %v, want empty", got.Ranking)
	}
}

func TestCorrectLowercases(t *testing.T) {
	c := newFixtureCorrector(t)
	got, err := c.Correct(context.Background(), "STA", "The", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Word != "sta" || got.Correction != "sat" {
		t.Errorf("Correct('STA' after 'The') = %+v", got)
	}
}

func TestCorrectTieBreak(t *testing.T) {
	dict := NewDictionaryFromCounts(map[string]int{"bat": 2, "cat": 2, "hat": 2, "rat": 5})
	c, err := NewCorrector(dict, fixtureModel(t))
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Correct(context.Background(), "xat", "", "")
	if err != nil {
		t.Fatal(err)
	}
	// only cat is in the model; the rest tie at 0 and fall back to counts
	want := []string{"cat", "rat", "bat", "hat"}
	if terms := got.Ranking.Terms(); !slices.Equal(terms, want) {
		t.Errorf("ranking = %q, want %q", terms, want)
	}
}

type countingMetrics struct {
	nopMetrics
	lookupFailures atomic.Int64
}

func (m *countingMetrics) LookupFailed() { m.lookupFailures.Add(1) }

func TestCorrectCountsLookupFailures(t *testing.T) {
	m := &countingMetrics{}
	c := newFixtureCorrector(t, WithMetrics(m))
	if _, err := c.Correct(context.Background(), "sta", "the", ""); err != nil {
		t.Fatal(err)
	}
	if n := m.lookupFailures.Load(); n != 1 {
		t.Errorf("lookup failures = %d, want 1 (stay)", n)
	}
}
