package ngramspell

import (
	"strings"
	"testing"

	"github.com/zchrykng/go-ngramspell/lm"
)

const fixtureARPA = "\\data\\\n" +
	"ngram 1=7\n" +
	"ngram 2=4\n" +
	"ngram 3=1\n" +
	"\n" +
	"\\1-grams:\n" +
	"-1.0\tthe\t-0.3\n" +
	"-2.0\tcat\t-0.2\n" +
	"-2.5\tsat\t-0.1\n" +
	"-3.0\tsta\n" +
	"-2.0\tstar\n" +
	"-2.2\tdog\n" +
	"-1.8\tmat\n" +
	"\n" +
	"\\2-grams:\n" +
	"-0.5\tthe cat\t-0.05\n" +
	"-0.7\tthe sat\n" +
	"-0.4\tcat sat\n" +
	"-0.9\tcat dog\n" +
	"\n" +
	"\\3-grams:\n" +
	"-0.2\tthe cat sat\n" +
	"\n" +
	"\\end\\\n"

// fixtureCounts holds "stay", which the model has never seen, and leaves out
// "sta", which it has.
var fixtureCounts = map[string]int{
	"the":  50,
	"cat":  10,
	"sat":  8,
	"star": 3,
	"stay": 4,
	"dog":  6,
	"mat":  5,
	"on":   20,
}

func fixtureModel(t *testing.T) *lm.Model {
	t.Helper()
	m, err := lm.ParseARPA(strings.NewReader(fixtureARPA))
	if err != nil {
		t.Fatalf("parsing fixture model: %v", err)
	}
	return m
}

func fixtureDictionary() *Dictionary {
	return NewDictionaryFromCounts(fixtureCounts)
}
