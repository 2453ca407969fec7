package main

import (
	"fmt"
	"io"
	"strings"

	"lyrics-analysis/config"
	"lyrics-analysis/models"
	"lyrics-analysis/services"
	"lyrics-analysis/subcmd"
)

func clean(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	subcmd := subcmd.New("clean", "clean lyrics: strip fillers, punctuation and stopwords").
		SetArg("file", "path", "lyrics file; stdin when omitted")
	var (
		lang   = subcmd.String("lang", cfg.Language, "lyrics language, Spanish or English")
		lines  = subcmd.Bool("lines", false, "keep lines and every word")
		header = subcmd.String("header", "none", "header removal before cleaning: none, lyrics (up to the word 'lyrics') or line (first line)")
		talVez = subcmd.Bool("tal-vez", false, `rewrite "tal vez" as "quizás"`)
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	language, err := models.ParseLanguage(*lang)
	if err != nil {
		return err
	}

	text, err := readInput(subcmd.Arg(), stdin)
	if err != nil {
		return err
	}

	switch *header {
	case "none":
	case "lyrics":
		text = services.StripHeader(text)
	case "line":
		text = services.StripFirstLine(text)
	default:
		return fmt.Errorf("unknown header mode '%s'", *header)
	}

	cleaner, err := services.NewDefaultCleaner(cfg.StopWordsPaths...)
	if err != nil {
		return err
	}

	var out string
	if *lines {
		out = cleaner.CleanLines(text)
		if *talVez {
			split := strings.Split(out, "\n")
			for i, line := range split {
				split[i] = services.NormalizePhrase(line)
			}
			out = strings.Join(split, "\n")
		}
	} else {
		if *talVez {
			text = services.NormalizePhrase(services.Letters(text))
		}
		out = cleaner.Clean(text, language)
	}

	_, err = fmt.Fprintln(stdout, out)
	return err
}
