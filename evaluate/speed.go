package evaluate

import (
	"context"
	"time"

	ngramspell "github.com/zchrykng/go-ngramspell"
)

// Speed is the outcome of a detection speed test.
type Speed struct {
	Words   int
	Elapsed time.Duration
}

// PerHundredWords is the detection time per 100 words.
func (s Speed) PerHundredWords() time.Duration {
	if s.Words == 0 {
		return 0
	}
	return s.Elapsed * 100 / time.Duration(s.Words)
}

// WordsPerSecond is the detection throughput.
func (s Speed) WordsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Words) / s.Elapsed.Seconds()
}

// DetectionSpeed runs detection alone over every word of cases.
func DetectionSpeed(ctx context.Context, dict *ngramspell.Dictionary, cases []Case) (Speed, error) {
	started := time.Now()
	words := 0
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return Speed{}, err
		}
		for _, s := range c.Sentences {
			for _, w := range ngramspell.ParseWords(s.Text) {
				ngramspell.Detect(dict, w)
				words++
			}
		}
	}
	return Speed{Words: words, Elapsed: time.Since(started)}, nil
}
