package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bbalet/stopwords"

	"lyrics-analysis/models"
)

// StopSet reports whether a lower-case token is a stopword.
type StopSet interface {
	Contains(word string) bool
}

// fillerWords are vocalizations that the stopword corpora do not cover.
var fillerWords = map[models.Language][]string{
	models.Spanish: {"yeah", "yeh"},
	models.English: {"yeah", "mmh", "bam", "ooh"},
}

// corpusExtras fill the gaps of the bbalet lists: contraction pieces left
// once apostrophes become spaces, and the conjugated forms of estar, haber,
// ser and tener.
var corpusExtras = map[models.Language][]string{
	models.English: {
		"ain", "aren", "couldn", "didn", "doesn", "don", "hadn", "hasn",
		"haven", "isn", "mightn", "mustn", "needn", "shan", "shouldn",
		"wasn", "weren", "won", "wouldn", "ll", "re", "ve",
		"gonna", "gotta", "wanna",
	},
	models.Spanish: {
		"estoy", "estás", "está", "estamos", "estáis", "están",
		"esté", "estés", "estemos", "estéis", "estén",
		"estaré", "estarás", "estará", "estaremos", "estaréis", "estarán",
		"estaba", "estabas", "estábamos", "estabais", "estaban",
		"estuve", "estuviste", "estuvo", "estuvimos", "estuvisteis", "estuvieron",
		"estuviera", "estuvieras", "estuviéramos", "estuvierais", "estuvieran",
		"he", "has", "ha", "hemos", "habéis", "han",
		"haya", "hayas", "hayamos", "hayáis", "hayan",
		"habré", "habrás", "habrá", "habremos", "habréis", "habrán",
		"habría", "habrías", "habríamos", "habríais", "habrían",
		"había", "habías", "habíamos", "habíais", "habían",
		"hube", "hubiste", "hubo", "hubimos", "hubisteis", "hubieron",
		"hubiera", "hubieras", "hubiéramos", "hubierais", "hubieran",
		"soy", "eres", "es", "somos", "sois", "son",
		"sea", "seas", "seamos", "seáis", "sean",
		"seré", "serás", "será", "seremos", "seréis", "serán",
		"sería", "serías", "seríamos", "seríais", "serían",
		"era", "eras", "éramos", "erais", "eran",
		"fui", "fuiste", "fue", "fuimos", "fuisteis", "fueron",
		"fuera", "fueras", "fuéramos", "fuerais", "fueran",
		"tengo", "tienes", "tiene", "tenemos", "tenéis", "tienen",
		"tenga", "tengas", "tengamos", "tengáis", "tengan",
		"tendré", "tendrás", "tendrá", "tendremos", "tendréis", "tendrán",
		"tendría", "tendrías", "tendríamos", "tendríais", "tendrían",
		"tenía", "tenías", "teníamos", "teníais", "tenían",
		"tuve", "tuviste", "tuvo", "tuvimos", "tuvisteis", "tuvieron",
		"tuviera", "tuvieras", "tuviéramos", "tuvierais", "tuvieran",
	},
}

// StopWords is the stopword set of a single language: the bbalet/stopwords
// corpus for the language code, the extras and filler words and any words
// loaded from JSON files. It is never mutated after NewStopWords returns.
type StopWords struct {
	lang  models.Language
	extra map[string]struct{}
}

func NewStopWords(lang models.Language, paths ...string) (*StopWords, error) {
	sw := &StopWords{
		lang:  lang,
		extra: make(map[string]struct{}),
	}

	for _, w := range fillerWords[lang] {
		sw.extra[w] = struct{}{}
	}
	for _, w := range corpusExtras[lang] {
		sw.extra[w] = struct{}{}
	}

	for _, path := range paths {
		words, err := loadStopWordFile(path)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			sw.extra[w] = struct{}{}
		}
		log.Printf("[stopwords] %s: loaded %d words from %s", lang, len(words), path)
	}

	return sw, nil
}

func (sw *StopWords) Language() models.Language {
	return sw.lang
}

func (sw *StopWords) Contains(word string) bool {
	if word == "" {
		return false
	}
	if _, ok := sw.extra[word]; ok {
		return true
	}
	// CleanString drops stopwords of the given language and keeps the rest.
	return strings.TrimSpace(stopwords.CleanString(word, sw.lang.Code(), false)) == ""
}

func loadStopWordFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read stopwords %s: %w", path, err)
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not parse stopwords %s: %w", path, err)
	}

	words := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}

// wordSet is a fixed StopSet, handy for callers that ship their own list.
type wordSet map[string]struct{}

func NewWordSet(words ...string) StopSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func (s wordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}
