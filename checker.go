package ngramspell

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zchrykng/go-ngramspell/lm"
	"github.com/zchrykng/go-ngramspell/tokenizer"
	"github.com/zchrykng/go-ngramspell/utilities"
	"github.com/zchrykng/go-ngramspell/verbosity"
)

// TypoRecord reports one detected typo and its correction, with the typo's
// byte span in the checked sentence.
type TypoRecord struct {
	Typo       string   `json:"typo"`
	Correction string   `json:"correction"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Length     int      `json:"length"`
	Candidates []string `json:"candidates,omitempty"`
}

// Checker finds and corrects the typos of whole sentences. The model and
// dictionary it uses can be replaced while it serves; a check in progress
// keeps the pair it started with.
type Checker struct {
	current atomic.Pointer[checkerState]
	swapMu  sync.Mutex

	opts      options
	logger    *slog.Logger
	metrics   Metrics
	verbosity verbosity.Verbosity
}

type checkerState struct {
	model     *lm.Model
	corrector *Corrector
}

func NewChecker(model *lm.Model, dict *Dictionary, opts ...Option) (*Checker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	corrector, err := newCorrector(dict, model, o)
	if err != nil {
		return nil, err
	}

	ch := &Checker{
		opts:      o,
		logger:    o.logger,
		metrics:   o.metrics,
		verbosity: o.verbosity,
	}
	ch.current.Store(&checkerState{model: model, corrector: corrector})
	return ch, nil
}

// Model returns the language model currently in use.
func (ch *Checker) Model() *lm.Model {
	return ch.current.Load().model
}

// Dictionary returns the dictionary currently in use.
func (ch *Checker) Dictionary() *Dictionary {
	return ch.current.Load().corrector.dict
}

// SwapModel atomically replaces the language model.
func (ch *Checker) SwapModel(model *lm.Model) error {
	return ch.swap(model, nil)
}

// SwapDictionary atomically replaces the dictionary.
func (ch *Checker) SwapDictionary(dict *Dictionary) error {
	return ch.swap(nil, dict)
}

// UpdateDictionary replaces the dictionary with update applied to the one
// in use. Concurrent updates are applied one after another, so none is lost.
// A nil result leaves the dictionary unchanged.
func (ch *Checker) UpdateDictionary(update func(*Dictionary) *Dictionary) error {
	ch.swapMu.Lock()
	defer ch.swapMu.Unlock()
	return ch.swapLocked(nil, update(ch.current.Load().corrector.dict))
}

func (ch *Checker) swap(model *lm.Model, dict *Dictionary) error {
	ch.swapMu.Lock()
	defer ch.swapMu.Unlock()
	return ch.swapLocked(model, dict)
}

// swapLocked must be called with swapMu held.
func (ch *Checker) swapLocked(model *lm.Model, dict *Dictionary) error {
	old := ch.current.Load()
	if model == nil {
		model = old.model
	}
	if dict == nil {
		dict = old.corrector.dict
	}
	corrector, err := newCorrector(dict, model, ch.opts)
	if err != nil {
		return err
	}
	ch.current.Store(&checkerState{model: model, corrector: corrector})
	ch.logger.Info("checker updated", "ngrams", model.Len(), "words", dict.Len())
	return nil
}

// Check tokenizes sentence and returns a record for every typo in it, in
// sentence order. The context of each typo is the original text of the one
// or two tokens before it, never an earlier correction.
func (ch *Checker) Check(ctx context.Context, sentence string) ([]TypoRecord, error) {
	started := time.Now()
	state := ch.current.Load()
	tokens := tokenizer.SpanTokenize(sentence)

	var records []TypoRecord
	for i, tok := range tokens {
		if !Detect(state.corrector.dict, tok.Text) {
			continue
		}

		var pre1, pre2 string
		if i >= 1 {
			pre1 = tokens[i-1].Text
		}
		if i >= 2 {
			pre2 = tokens[i-2].Text
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		correction, err := state.corrector.Correct(ctx, tok.Text, pre1, pre2)
		if err != nil {
			return nil, err
		}
		ch.metrics.TypoDetected(correction.Correction != Unknown)
		ch.logger.Debug("typo", "token", tok.Text, "correction", correction.Correction, "candidates", len(correction.Ranking))

		records = append(records, TypoRecord{
			Typo:       tok.Text,
			Correction: correction.Correction,
			Start:      tok.Start,
			End:        tok.End,
			Length:     tok.Length,
			Candidates: ch.reported(correction.Ranking),
		})
	}

	ch.metrics.SentenceChecked(len(tokens), time.Since(started))
	return records, nil
}

// CharacterSpans returns copies of records with Start, End and Length
// counted in characters of sentence instead of bytes.
func CharacterSpans(sentence string, records []TypoRecord) []TypoRecord {
	out := make([]TypoRecord, len(records))
	for i, rec := range records {
		rec.Start = utilities.RuneOffset(sentence, rec.Start)
		rec.End = utilities.RuneOffset(sentence, rec.End)
		rec.Length = rec.End - rec.Start
		out[i] = rec
	}
	return out
}

func (ch *Checker) reported(ranking Candidates) []string {
	switch ch.verbosity {
	case verbosity.All:
		return ranking.Terms()
	case verbosity.Closest:
		return ranking.Closest().Terms()
	}
	return nil
}

// CheckAll checks sentences on up to workers goroutines and returns the
// records of each sentence at its index. It stops at the first error.
func (ch *Checker) CheckAll(ctx context.Context, sentences []string, workers int) ([][]TypoRecord, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(sentences) {
		workers = len(sentences)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]TypoRecord, len(sentences))
	tasks := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				records, err := ch.Check(ctx, sentences[i])
				if err != nil {
					errOnce.Do(func() {
						firstErr = fmt.Errorf("sentence %d: %w", i, err)
						cancel()
					})
					continue
				}
				results[i] = records
			}
		}()
	}

feed:
	for i := range sentences {
		select {
		case tasks <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
