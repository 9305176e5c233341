package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	ngramspell "github.com/zchrykng/go-ngramspell"
	"github.com/zchrykng/go-ngramspell/internal/config"
	"github.com/zchrykng/go-ngramspell/internal/customdict"
	"github.com/zchrykng/go-ngramspell/lm"
)

// env holds what every command shares: settings, logger and the optional
// custom word store.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	custom *customdict.CustomDict
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	envFile := fs.String("env", ".env", "optional .env file")
	return fs, envFile
}

func setup(envFile string) (*env, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: cfg.Logger(os.Stderr)}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		e.custom = customdict.New(client)
	}
	return e, nil
}

func (e *env) options() []ngramspell.Option {
	return []ngramspell.Option{
		ngramspell.WithLogger(e.logger),
		ngramspell.WithVerbosity(e.cfg.Verbosity),
		ngramspell.WithMaxEditsLength(e.cfg.MaxEditsLength),
	}
}

// dictionary reads the corpus and merges the custom words into it.
func (e *env) dictionary(ctx context.Context) (*ngramspell.Dictionary, error) {
	dict, err := ngramspell.LoadDictionaryFile(e.cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	if e.custom == nil {
		return dict, nil
	}
	words, err := e.custom.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading custom words: %w", err)
	}
	e.logger.Info("custom words loaded", slog.Int("count", len(words)))
	return dict.With(words...), nil
}

func (e *env) checker(ctx context.Context, opts ...ngramspell.Option) (*ngramspell.Checker, error) {
	model, err := lm.Open(e.cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	dict, err := e.dictionary(ctx)
	if err != nil {
		return nil, err
	}
	e.logger.Info("checker ready",
		slog.String("model", e.cfg.ModelPath),
		slog.Int("unigrams", model.Count(1)),
		slog.Int("bigrams", model.Count(2)),
		slog.Int("trigrams", model.Count(3)),
		slog.Int("words", dict.Len()))
	return ngramspell.NewChecker(model, dict, append(e.options(), opts...)...)
}
