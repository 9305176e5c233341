// Package evaluate measures a checker against an annotated test set of
// essays and times typo detection.
package evaluate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ngramspell "github.com/zchrykng/go-ngramspell"
	"github.com/zchrykng/go-ngramspell/utilities"
)

// Checker checks sentences concurrently.
type Checker interface {
	CheckAll(ctx context.Context, sentences []string, workers int) ([][]ngramspell.TypoRecord, error)
}

// Report summarizes an evaluation run.
type Report struct {
	Cases     int
	Sentences int
	Typos     int // annotated spelling errors
	Detected  int
	Corrected int
	Elapsed   time.Duration
}

// Recall is the share of annotated typos that were detected.
func (r Report) Recall() float64 {
	return ratio(r.Detected, r.Typos)
}

// Precision is the share of detected typos that were corrected to the
// annotated answer.
func (r Report) Precision() float64 {
	return ratio(r.Corrected, r.Detected)
}

// F1 is the harmonic mean of Precision and Recall.
func (r Report) F1() float64 {
	p, rc := r.Precision(), r.Recall()
	if p+rc == 0 {
		return 0
	}
	return 2 * p * rc / (p + rc)
}

func (r Report) String() string {
	return fmt.Sprintf("typos=%d detected=%d corrected=%d recall=%.3f precision=%.3f f1=%.3f",
		r.Typos, r.Detected, r.Corrected, r.Recall(), r.Precision(), r.F1())
}

func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("cases", r.Cases),
		slog.Int("sentences", r.Sentences),
		slog.Int("typos", r.Typos),
		slog.Int("detected", r.Detected),
		slog.Int("corrected", r.Corrected),
		slog.Float64("recall", r.Recall()),
		slog.Float64("precision", r.Precision()),
		slog.Float64("f1", r.F1()),
		slog.Duration("elapsed", r.Elapsed),
	)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Evaluate checks every sentence of cases and annotates each spelling
// error in place. An error is detected when a typo record starts at its
// offset, and corrected when the record's correction equals the lower-cased
// answer. Errors of other types are left unmarked.
func Evaluate(ctx context.Context, checker Checker, cases []Case, workers int) (Report, error) {
	started := time.Now()

	var sentences []string
	for _, c := range cases {
		for _, s := range c.Sentences {
			sentences = append(sentences, s.Text)
		}
	}
	results, err := checker.CheckAll(ctx, sentences, workers)
	if err != nil {
		return Report{}, fmt.Errorf("evaluate: %w", err)
	}

	report := Report{Cases: len(cases), Sentences: len(sentences)}
	next := 0
	for ci := range cases {
		for si := range cases[ci].Sentences {
			s := &cases[ci].Sentences[si]
			records := results[next]
			next++
			for ei := range s.Errors {
				e := &s.Errors[ei]
				e.Detected, e.Corrected = false, false
				if e.Type != ErrorType {
					continue
				}
				report.Typos++
				rec, ok := recordAt(s.Text, records, int(e.Start))
				if !ok {
					continue
				}
				e.Detected = true
				report.Detected++
				if strings.ToLower(e.Answer) == rec.Correction {
					e.Corrected = true
					report.Corrected++
				}
			}
		}
	}
	report.Elapsed = time.Since(started)
	return report, nil
}

// recordAt finds the record whose span starts at the character offset start.
func recordAt(sentence string, records []ngramspell.TypoRecord, start int) (ngramspell.TypoRecord, bool) {
	for _, rec := range records {
		if utilities.RuneOffset(sentence, rec.Start) == start {
			return rec, true
		}
	}
	return ngramspell.TypoRecord{}, false
}
