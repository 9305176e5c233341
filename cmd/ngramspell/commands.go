package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	ngramspell "github.com/zchrykng/go-ngramspell"
	"github.com/zchrykng/go-ngramspell/evaluate"
	"github.com/zchrykng/go-ngramspell/lm"
	"github.com/zchrykng/go-ngramspell/typos"
)

func runConvert(_ context.Context, args []string) error {
	fs, envFile := newFlagSet("convert")
	in := fs.String("in", "", "ARPA model to read")
	out := fs.String("out", "", "JSON table to write (default MODEL_PATH)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(*envFile)
	if err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-in is required")
	}
	if *out == "" {
		*out = e.cfg.ModelPath
	}

	model, err := lm.LoadARPAFile(*in)
	if err != nil {
		return err
	}
	for order := 1; order <= lm.MaxOrder; order++ {
		if declared := model.DeclaredCount(order); declared > 0 && declared != model.Count(order) {
			e.logger.Warn("n-gram count differs from header",
				slog.Int("order", order), slog.Int("declared", declared), slog.Int("read", model.Count(order)))
		}
	}
	if err := lm.SaveFile(*out, model); err != nil {
		return err
	}
	e.logger.Info("model converted", slog.String("out", *out), slog.Int("ngrams", model.Len()))
	return nil
}

func runCheck(ctx context.Context, args []string) error {
	fs, envFile := newFlagSet("check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(*envFile)
	if err != nil {
		return err
	}
	checker, err := e.checker(ctx)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	enc := json.NewEncoder(os.Stdout)
	for scanner.Scan() {
		sentence := scanner.Text()
		records, err := checker.Check(ctx, sentence)
		if err != nil {
			return err
		}
		if err := enc.Encode(ngramspell.CharacterSpans(sentence, records)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func runEval(ctx context.Context, args []string) error {
	fs, envFile := newFlagSet("eval")
	testset := fs.String("testset", "", "JSON-lines test set")
	result := fs.String("result", "", "where to write the annotated test set")
	speed := fs.Bool("speed", false, "time detection only")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(*envFile)
	if err != nil {
		return err
	}
	if *testset == "" {
		return errors.New("-testset is required")
	}
	cases, err := evaluate.LoadCases(*testset)
	if err != nil {
		return err
	}

	if *speed {
		dict, err := e.dictionary(ctx)
		if err != nil {
			return err
		}
		s, err := evaluate.DetectionSpeed(ctx, dict, cases)
		if err != nil {
			return err
		}
		e.logger.Info("detection speed",
			slog.Int("words", s.Words),
			slog.Duration("elapsed", s.Elapsed),
			slog.Duration("per_100_words", s.PerHundredWords()),
			slog.Float64("words_per_second", s.WordsPerSecond()))
		return nil
	}

	checker, err := e.checker(ctx)
	if err != nil {
		return err
	}
	report, err := evaluate.Evaluate(ctx, checker, cases, e.cfg.Workers)
	if err != nil {
		return err
	}
	e.logger.Info("evaluation done", slog.Any("report", report))
	fmt.Println(report)

	if *result != "" {
		if err := evaluate.SaveCases(*result, cases); err != nil {
			return err
		}
		e.logger.Info("result saved", slog.String("path", *result))
	}
	return nil
}

func runTypos(_ context.Context, args []string) error {
	fs, envFile := newFlagSet("typos")
	outDir := fs.String("out", "testset", "directory for raw_N, essay_N and typo_N files")
	quantity := fs.Int("n", 500, "number of essays")
	seed := fs.Uint64("seed", 1, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := setup(*envFile)
	if err != nil {
		return err
	}

	dict, err := ngramspell.LoadDictionaryFile(e.cfg.CorpusPath)
	if err != nil {
		return err
	}
	corpus, err := os.Open(e.cfg.CorpusPath)
	if err != nil {
		return err
	}
	defer corpus.Close()
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	maker := typos.NewMaker(dict, *seed)
	n := 0
	for essay, err := range maker.GenerateEssays(corpus, *quantity) {
		if err != nil {
			return err
		}
		n++
		if err := writeEssay(*outDir, n, essay); err != nil {
			return err
		}
	}
	e.logger.Info("test set written", slog.String("dir", *outDir), slog.Int("essays", n))
	return nil
}

func writeEssay(dir string, n int, essay typos.Essay) error {
	suffix := strconv.Itoa(n) + ".txt"
	if err := os.WriteFile(filepath.Join(dir, "raw_"+suffix), []byte(essay.Raw), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "essay_"+suffix), []byte(essay.Text), 0o644); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "typo_"+suffix))
	if err != nil {
		return err
	}
	if err := typos.WriteTypos(f, essay.Typos); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
