package ngramspell

import "time"

// Metrics receives counters from the checker. Implementations must be safe
// for concurrent use.
type Metrics interface {
	// SentenceChecked is called once per checked sentence.
	SentenceChecked(tokens int, elapsed time.Duration)
	// TypoDetected is called per typo; corrected is false when no candidate
	// was found.
	TypoDetected(corrected bool)
	// LookupFailed is called when a candidate could not be scored.
	LookupFailed()
}

type nopMetrics struct{}

func (nopMetrics) SentenceChecked(int, time.Duration) {}
func (nopMetrics) TypoDetected(bool)                  {}
func (nopMetrics) LookupFailed()                      {}
