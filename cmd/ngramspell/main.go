package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: ngramspell <command> [flags]

commands:
  convert   turn an ARPA model into the JSON n-gram table
  check     check sentences read from stdin, one per line
  eval      score the checker against a JSON-lines test set
  typos     build a typo test set from a corpus
  serve     serve the checker over HTTP
`

type command func(ctx context.Context, args []string) error

var commands = map[string]command{
	"convert": runConvert,
	"check":   runCheck,
	"eval":    runEval,
	"typos":   runTypos,
	"serve":   runServe,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd(ctx, os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "ngramspell %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
