package main

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"time"

	ngramspell "github.com/zchrykng/go-ngramspell"
	"github.com/zchrykng/go-ngramspell/evaluate"
	"github.com/zchrykng/go-ngramspell/lm"
)

func main() {
	modelPath := flag.String("model", "model.json", "language model, ARPA or JSON")
	corpusPath := flag.String("corpus", "corpus.txt", "dictionary corpus")
	testset := flag.String("testset", "ielts.json", "JSON-lines test set")
	workers := flag.Int("workers", 4, "concurrent checks")
	flag.Parse()

	model, err := lm.Open(*modelPath)
	if err != nil {
		panic(err)
	}
	dict, err := ngramspell.LoadDictionaryFile(*corpusPath)
	if err != nil {
		panic(err)
	}
	cases, err := evaluate.LoadCases(*testset)
	if err != nil {
		panic(err)
	}

	fmt.Println(model.Count(1), model.Count(2), model.Count(3))
	fmt.Println(dict.Len())

	ctx := context.Background()
	speed, err := evaluate.DetectionSpeed(ctx, dict, cases)
	if err != nil {
		panic(err)
	}
	fmt.Println("--------------")
	fmt.Printf("           words: %d\n", speed.Words)
	fmt.Printf("  detection time: %s\n", speed.Elapsed)
	fmt.Printf("   per 100 words: %s\n", speed.PerHundredWords())

	checker, err := ngramspell.NewChecker(model, dict)
	if err != nil {
		panic(err)
	}
	var sentences []string
	for _, c := range cases {
		for _, s := range c.Sentences {
			sentences = append(sentences, s.Text)
		}
	}

	latencies := make([]time.Duration, 0, len(sentences))
	for _, s := range sentences {
		started := time.Now()
		if _, err := checker.Check(ctx, s); err != nil {
			panic(err)
		}
		latencies = append(latencies, time.Since(started))
	}
	slices.Sort(latencies)

	started := time.Now()
	if _, err := checker.CheckAll(ctx, sentences, *workers); err != nil {
		panic(err)
	}
	parallel := time.Since(started)

	fmt.Println("--------------")
	fmt.Printf("       sentences: %d\n", len(sentences))
	if n := len(latencies); n > 0 {
		fmt.Printf("     p50 latency: %s\n", latencies[n/2])
		fmt.Printf("     p99 latency: %s\n", latencies[n*99/100])
		fmt.Printf("     max latency: %s\n", latencies[n-1])
	}
	fmt.Printf("%2d workers total: %s\n", *workers, parallel)

}
