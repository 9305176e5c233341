package ngramspell

import (
	"github.com/zchrykng/go-ngramspell/lm"
	"github.com/zchrykng/go-ngramspell/utilities"
)

// Scorer estimates trigram probabilities with Katz-style backoff.
type Scorer struct {
	model *lm.Model
}

func NewScorer(model *lm.Model) *Scorer {
	return &Scorer{model: model}
}

// LogProbability returns log10 P(c | a b), where a is two words before c and
// b the word right before it. ok is false when a lookup the chosen backoff
// path needs is missing from the model.
func (s *Scorer) LogProbability(c, b, a string) (logP float64, ok bool) {
	m := s.model

	if abc, found := m.Lookup(lm.NewKey(a, b, c)); found {
		return abc.LogP, true
	}

	ab, hasAB := m.Lookup(lm.NewKey(a, b))
	bc, hasBC := m.Lookup(lm.NewKey(b, c))
	switch {
	case hasAB && hasBC:
		return ab.LogBW + bc.LogP, true
	case hasAB:
		ub, okB := m.Lookup(lm.NewKey(b))
		uc, okC := m.Lookup(lm.NewKey(c))
		if !okB || !okC {
			return 0, false
		}
		return ab.LogBW + ub.LogBW + uc.LogP, true
	case hasBC:
		return bc.LogP, true
	}

	uc, okC := m.Lookup(lm.NewKey(c))
	if !okC {
		return 0, false
	}
	if ub, okB := m.Lookup(lm.NewKey(b)); okB {
		return ub.LogBW + uc.LogP, true
	}
	return uc.LogP, true
}

// Probability is LogProbability in linear space. A failed lookup yields 0.
func (s *Scorer) Probability(c, b, a string) (float64, bool) {
	logP, ok := s.LogProbability(c, b, a)
	if !ok {
		return 0, false
	}
	return utilities.Pow10(logP), true
}
