package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"lyrics-analysis/models"
)

var (
	wordRunRe    = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)
	nonLetterRe  = regexp.MustCompile(`[^\p{L}\p{M}\s]`)
	lineFillerRe = regexp.MustCompile(`^(?:a+h+|o+h+|u+h+|e+h+|mm+|ja+|la+|na+)$`)
	blanksRe     = regexp.MustCompile(`[^\S\n]+`)
)

// fillerUnits repeated two or more times form a whole-word interjection
// ("ohoh", "lalala", "mmmm"). Longer units come first.
var fillerUnits = []string{
	"oh", "ah", "eh", "uh", "ih",
	"la", "na", "mm", "ja",
	"o", "a", "e", "u", "i",
}

const minTokenRunes = 3

// Cleaner turns raw lyrics into token strings. The stopword sets are fixed
// at construction.
type Cleaner struct {
	stops map[models.Language]StopSet
}

func NewCleaner(sets map[models.Language]StopSet) *Cleaner {
	stops := make(map[models.Language]StopSet, len(sets))
	for lang, set := range sets {
		stops[lang] = set
	}
	return &Cleaner{stops: stops}
}

// NewDefaultCleaner builds a Cleaner with the Spanish and English stopword
// corpora, each extended with the words from extraPaths.
func NewDefaultCleaner(extraPaths ...string) (*Cleaner, error) {
	sets := make(map[models.Language]StopSet, 2)
	for _, lang := range []models.Language{models.Spanish, models.English} {
		sw, err := NewStopWords(lang, extraPaths...)
		if err != nil {
			return nil, err
		}
		sets[lang] = sw
	}
	return NewCleaner(sets), nil
}

// Clean lower-cases text, strips repeated interjections and non-letters, and
// drops stopwords of lang and tokens shorter than three runes. Surviving
// tokens keep their order and are joined by single spaces.
func (c *Cleaner) Clean(text string, lang models.Language) string {
	stops := c.stops[lang]

	var kept []string
	for _, w := range letterTokens(text) {
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		if stops != nil && stops.Contains(w) {
			continue
		}
		kept = append(kept, w)
	}

	return strings.Join(kept, " ")
}

// Letters lower-cases text and keeps only its words, without interjections,
// punctuation or digits, joined by single spaces. No word is dropped for
// being short or a stopword.
func Letters(text string) string {
	return strings.Join(letterTokens(text), " ")
}

func letterTokens(text string) []string {
	text = stripFillers(strings.ToLower(text), isRepeatedFiller)
	return strings.Fields(nonLetterRe.ReplaceAllString(text, " "))
}

// CleanLines is the line-preserving variant of Clean: no stopword or length
// filtering, blanks collapsed, empty lines dropped.
func (c *Cleaner) CleanLines(text string) string {
	text = stripFillers(strings.ToLower(text), lineFillerRe.MatchString)
	text = nonLetterRe.ReplaceAllString(text, " ")
	text = blanksRe.ReplaceAllString(text, " ")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

func stripFillers(text string, isFiller func(string) bool) string {
	return wordRunRe.ReplaceAllStringFunc(text, func(w string) string {
		if isFiller(w) {
			return ""
		}
		return w
	})
}

func isRepeatedFiller(w string) bool {
	for _, unit := range fillerUnits {
		n := len(w) / len(unit)
		if n >= 2 && len(w)%len(unit) == 0 && strings.Repeat(unit, n) == w {
			return true
		}
	}
	return false
}

// StripHeader drops everything up to and including the first token that
// contains "lyrics". Whitespace is normalized either way.
func StripHeader(text string) string {
	tokens := strings.Fields(text)

	for i, tok := range tokens {
		if strings.Contains(tok, "lyrics") {
			return strings.Join(tokens[i+1:], " ")
		}
	}

	return strings.Join(tokens, " ")
}

// StripFirstLine drops the first line. Text without a newline is returned
// as is.
func StripFirstLine(text string) string {
	_, rest, ok := strings.Cut(text, "\n")
	if !ok {
		return text
	}
	return rest
}

// NormalizePhrase rewrites "tal vez" to "quizás" so the phrase counts as a
// single word.
func NormalizePhrase(text string) string {
	tokens := strings.Fields(text)
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		if tokens[i] == "tal" && i+1 < len(tokens) && tokens[i+1] == "vez" {
			out = append(out, "quizás")
			i++
			continue
		}
		out = append(out, tokens[i])
	}

	return strings.Join(out, " ")
}
