// lyrics fetches song lyrics from Genius and analyzes them: cleaning,
// emotion tagging, word frequencies, bigrams and rhyme scores.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lyrics-analysis/config"
)

var usage = strings.TrimSpace(`
usage: lyrics $cmd
valid $cmd are 'fetch', 'clean', 'analyze', 'serve'
for help: lyrics $cmd -help
`)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "fetch":
		return fetch(ctx, cfg, args)

	case "clean":
		return clean(cfg, args, os.Stdin, os.Stdout)

	case "analyze":
		return analyze(cfg, args, os.Stdin, os.Stdout)

	case "serve":
		return serve(ctx, cfg, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
