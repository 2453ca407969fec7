package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lyrics-analysis/models"
)

var errLexiconShape = errors.New("lexicon must be a JSON object of string arrays")

type LexiconEntry struct {
	Emotion  string
	Triggers []string
}

// Lexicon maps emotions to trigger words. Emotions keep the order in which
// they were declared, which decides both matching and ties.
type Lexicon struct {
	emotions []string
	triggers []map[string]struct{}
}

func NewLexicon(entries ...LexiconEntry) *Lexicon {
	lex := &Lexicon{}
	for _, e := range entries {
		lex.set(e.Emotion, e.Triggers)
	}
	return lex
}

// LoadLexicon reads a lexicon JSON file such as
// {"joy": ["happy", "smile"], "sadness": ["cry"]}.
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open lexicon: %w", err)
	}
	defer f.Close()

	lex, err := ParseLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon decodes a lexicon object token by token so that key order
// survives. A repeated key replaces the earlier triggers but keeps its
// position.
func ParseLexicon(r io.Reader) (*Lexicon, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errLexiconShape
	}

	lex := &Lexicon{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		emotion, ok := tok.(string)
		if !ok {
			return nil, errLexiconShape
		}

		var triggers []string
		if err := dec.Decode(&triggers); err != nil {
			return nil, fmt.Errorf("emotion %q: %w", emotion, err)
		}
		lex.set(emotion, triggers)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return lex, nil
}

func (lex *Lexicon) set(emotion string, triggers []string) {
	words := make(map[string]struct{}, len(triggers))
	for _, w := range triggers {
		words[w] = struct{}{}
	}

	for i, e := range lex.emotions {
		if e == emotion {
			lex.triggers[i] = words
			return
		}
	}
	lex.emotions = append(lex.emotions, emotion)
	lex.triggers = append(lex.triggers, words)
}

func (lex *Lexicon) Emotions() []string {
	return append([]string(nil), lex.emotions...)
}

// Counts returns, per emotion in lexicon order, how many tokens of text
// matched it. A token counts only for the first emotion it triggers.
func (lex *Lexicon) Counts(text string) []int {
	counts := make([]int, len(lex.emotions))

	for _, w := range strings.Fields(text) {
		for i, words := range lex.triggers {
			if _, ok := words[w]; ok {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// Classify returns the emotion with the most matches, the earliest declared
// on ties, or neutral when nothing matched.
func (lex *Lexicon) Classify(text string) models.Emotion {
	counts := lex.Counts(text)

	best := -1
	for i, c := range counts {
		if c > 0 && (best < 0 || c > counts[best]) {
			best = i
		}
	}

	if best < 0 {
		return models.Neutral
	}
	return models.Emotion(lex.emotions[best])
}
