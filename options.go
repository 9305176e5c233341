package ngramspell

import (
	"log/slog"

	"github.com/hbollon/go-edlib"

	"github.com/zchrykng/go-ngramspell/verbosity"
)

const (
	defaultMaxEditDistance = 2
	defaultVerbosity       = verbosity.Top
	defaultAlgorithm       = edlib.OSADamerauLevenshtein
)

type options struct {
	logger            *slog.Logger
	metrics           Metrics
	verbosity         verbosity.Verbosity
	maxEditDistance   int
	maxEditsLength    int
	distanceAlgorithm edlib.Algorithm
}

func defaultOptions() options {
	return options{
		logger:            slog.New(slog.DiscardHandler),
		metrics:           nopMetrics{},
		verbosity:         defaultVerbosity,
		maxEditDistance:   defaultMaxEditDistance,
		distanceAlgorithm: defaultAlgorithm,
	}
}

// Option configures a Corrector or a Checker.
type Option func(*options)

// WithLogger sets the logger debug and warning messages go to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the sink for checker counters.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithVerbosity sets how much of the ranking typo records carry.
func WithVerbosity(v verbosity.Verbosity) Option {
	return func(o *options) {
		o.verbosity = v
	}
}

// WithMaxEditDistance limits candidate search to 0, 1 or 2 edits.
func WithMaxEditDistance(n int) Option {
	return func(o *options) {
		o.maxEditDistance = n
	}
}

// WithMaxEditsLength skips the two-edit search for words longer than n
// runes. Zero means no limit.
func WithMaxEditsLength(n int) Option {
	return func(o *options) {
		o.maxEditsLength = n
	}
}

// WithDistanceAlgorithm sets the edlib algorithm used for the Distance
// reported on each candidate.
func WithDistanceAlgorithm(algorithm edlib.Algorithm) Option {
	return func(o *options) {
		o.distanceAlgorithm = algorithm
	}
}
