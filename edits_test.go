package ngramspell

import (
	"context"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"
)

func TestEdits1(t *testing.T) {
	tests := []struct {
		word string
		size int
	}{
		{"somthing", 441},
		{"sta", 181},
		{"ab", 129},
		{"a", 77},
		{"", 26},
	}
	for _, test := range tests {
		edits := Edits1(test.word)
		if edits.Cardinality() != test.size {
			t.Errorf("len(Edits1(%q)) = %d, want %d", test.word, edits.Cardinality(), test.size)
		}
		if edits.Contains(test.word) {
			t.Errorf("Edits1(%q) contains the word itself", test.word)
		}
		edits.Each(func(e string) bool {
			if d := edlib.OSADamerauLevenshteinDistance(test.word, e); d != 1 {
				t.Errorf("Edits1(%q) holds %q at distance %d", test.word, e, d)
				return true
			}
			return false
		})
	}
}

func TestEdits1Operations(t *testing.T) {
	edits := Edits1("sta")
	for _, want := range []string{
		"ta", "sa", "st", // deletes
		"tsa", "sat", // transposes
		"sea", "stz", // substitutions
		"asta", "stay", "star", // insertions
	} {
		if !edits.Contains(want) {
			t.Errorf("Edits1('sta') is missing %q", want)
		}
	}
}

func TestEdits1Runes(t *testing.T) {
	edits := Edits1("né")
	for _, want := range []string{"n", "é", "én", "ne", "nés"} {
		if !edits.Contains(want) {
			t.Errorf("Edits1('né') is missing %q", want)
		}
	}
}

func TestEdits2(t *testing.T) {
	seq := Edits2("ab")

	first := mapset.NewThreadUnsafeSet[string]()
	for e := range seq {
		first.Add(e)
	}
	// ranging again restarts the sequence
	second := mapset.NewThreadUnsafeSet[string]()
	for e := range seq {
		second.Add(e)
	}
	if !first.Equal(second) {
		t.Errorf("Edits2 yielded different sets on two passes: %d vs %d", first.Cardinality(), second.Cardinality())
	}

	for _, want := range []string{"ba", "", "xaby", "cd", "ab"} {
		if !first.Contains(want) {
			t.Errorf("Edits2('ab') is missing %q", want)
		}
	}
	first.Each(func(e string) bool {
		if d := edlib.OSADamerauLevenshteinDistance("ab", e); d > 2 {
			t.Errorf("Edits2('ab') holds %q at distance %d", e, d)
			return true
		}
		return false
	})
}

func TestEdits2StopsEarly(t *testing.T) {
	n := 0
	for range Edits2("something") {
		n++
		if n == 10 {
			break
		}
	}
	if n != 10 {
		t.Errorf("iterated %d edits, want 10", n)
	}
}

func TestUntilDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := 0
	for range untilDone(ctx, Edits2("something")) {
		n++
	}
	if n >= 114324 {
		t.Errorf("untilDone did not stop a cancelled enumeration (%d edits)", n)
	}
	if n > ctxCheckInterval {
		t.Errorf("untilDone yielded %d edits after cancellation, want at most %d", n, ctxCheckInterval)
	}
}
