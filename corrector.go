package ngramspell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/zchrykng/go-ngramspell/lm"
)

// Unknown is the correction reported when no candidate exists.
const Unknown = "<unk>"

var (
	ErrNilModel      = errors.New("ngramspell: nil language model")
	ErrNilDictionary = errors.New("ngramspell: nil dictionary")
)

// Correction is the outcome of correcting one word.
type Correction struct {
	Word       string     // Word is the lower-cased input
	Correction string     // Correction is the best candidate, or Unknown
	Ranking    Candidates // Ranking holds every candidate, best first
}

// Corrector proposes and ranks corrections for misspelled words.
// It is safe for concurrent use.
type Corrector struct {
	dict     *Dictionary
	scorer   *Scorer
	distance func(a, b string) int

	logger          *slog.Logger
	metrics         Metrics
	maxEditDistance int
	maxEditsLength  int
}

func NewCorrector(dict *Dictionary, model *lm.Model, opts ...Option) (*Corrector, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newCorrector(dict, model, o)
}

func newCorrector(dict *Dictionary, model *lm.Model, o options) (*Corrector, error) {
	if dict == nil {
		return nil, ErrNilDictionary
	}
	if model == nil {
		return nil, ErrNilModel
	}
	if o.maxEditDistance < 0 || o.maxEditDistance > 2 {
		return nil, fmt.Errorf("ngramspell: maxEditDistance must be within 0..2, got %d", o.maxEditDistance)
	}
	if o.maxEditsLength < 0 {
		return nil, fmt.Errorf("ngramspell: maxEditsLength must be >= 0, got %d", o.maxEditsLength)
	}
	distance, err := distanceFunc(o.distanceAlgorithm)
	if err != nil {
		return nil, err
	}

	return &Corrector{
		dict:            dict,
		scorer:          NewScorer(model),
		distance:        distance,
		logger:          o.logger,
		metrics:         o.metrics,
		maxEditDistance: o.maxEditDistance,
		maxEditsLength:  o.maxEditsLength,
	}, nil
}

// Dictionary returns the dictionary c draws candidates from.
func (c *Corrector) Dictionary() *Dictionary {
	return c.dict
}

// Candidates returns the known words closest to word: word itself when
// known, otherwise the known words one edit away, otherwise two edits away.
// The result is empty when nothing qualifies. The error is non-nil only
// when ctx ended during the search.
func (c *Corrector) Candidates(ctx context.Context, word string) (mapset.Set[string], error) {
	if c.dict.Contains(word) {
		return mapset.NewThreadUnsafeSet(word), nil
	}
	if c.maxEditDistance < 1 {
		return mapset.NewThreadUnsafeSet[string](), nil
	}

	if known := c.dict.Known(setSeq(Edits1(word))); known.Cardinality() > 0 {
		return known, nil
	}
	if c.maxEditDistance < 2 {
		return mapset.NewThreadUnsafeSet[string](), nil
	}
	if c.maxEditsLength > 0 && utf8.RuneCountInString(word) > c.maxEditsLength {
		c.logger.Debug("skipping two-edit search", "word", word, "limit", c.maxEditsLength)
		return mapset.NewThreadUnsafeSet[string](), nil
	}

	known := c.dict.Known(untilDone(ctx, Edits2(word)))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ngramspell: candidates for %q: %w", word, err)
	}
	return known, nil
}

// Correct picks the most probable correction of word given pre1, the word
// right before it, and pre2, the word before pre1. Missing context is "".
// All three are lower-cased first, so candidate tiers are computed on the
// lower-cased word.
func (c *Corrector) Correct(ctx context.Context, word, pre1, pre2 string) (Correction, error) {
	word = strings.ToLower(word)
	pre1 = strings.ToLower(pre1)
	pre2 = strings.ToLower(pre2)

	candidates, err := c.Candidates(ctx, word)
	if err != nil {
		return Correction{}, err
	}

	ranking := make(Candidates, 0, candidates.Cardinality())
	candidates.Each(func(term string) bool {
		p, ok := c.scorer.Probability(term, pre1, pre2)
		if !ok {
			c.metrics.LookupFailed()
			c.logger.Debug("candidate not in language model", "word", word, "candidate", term)
		}
		ranking = append(ranking, Candidate{
			Term:        term,
			Probability: p,
			Count:       c.dict.Count(term),
			Distance:    c.distance(word, term),
		})
		return false
	})
	ranking.Sort()

	result := Correction{Word: word, Correction: Unknown, Ranking: ranking}
	if len(ranking) > 0 {
		result.Correction = ranking[0].Term
	}
	return result, nil
}
