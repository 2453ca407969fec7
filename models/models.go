package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Language string

const (
	Spanish Language = "Spanish"
	English Language = "English"
)

var ErrUnknownLanguage = errors.New("unknown language")

// ParseLanguage accepts the display name, the lower-case name or the
// ISO 639-1 code.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spanish", "es":
		return Spanish, nil
	case "english", "en":
		return English, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

func (l Language) Code() string {
	if l == English {
		return "en"
	}
	return "es"
}

type Emotion string

const (
	Joy     Emotion = "joy"
	Anger   Emotion = "anger"
	Sadness Emotion = "sadness"
	Neutral Emotion = "neutral"
)

// Sentiment holds VADER-style proportions; Positive, Negative and Neutral
// sum to about 1.
type Sentiment struct {
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Compound float64 `json:"compound"`
}

type SongRecord struct {
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Pageviews   int64  `json:"pageviews"`
	Album       string `json:"album"`
	Lyrics      string `json:"lyrics"`
}

// SongColumns is the column order of tabular song output.
var SongColumns = []string{"artist", "title", "release_date", "pageviews", "album", "lyrics"}

func (s SongRecord) Row() []string {
	return []string{
		s.Artist,
		s.Title,
		s.ReleaseDate,
		strconv.FormatInt(s.Pageviews, 10),
		s.Album,
		s.Lyrics,
	}
}

type Bigram struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

func (b Bigram) String() string {
	return b.First + " " + b.Second
}

type BigramCount struct {
	Bigram Bigram `json:"bigram"`
	Count  int    `json:"count"`
}

type WordCount struct {
	Word   string   `json:"word"`
	Count  int      `json:"count"`
	Tracks []string `json:"tracks"`
}

type SongAnalysis struct {
	Title          string  `json:"title"`
	CleanLyrics    string  `json:"clean_lyrics"`
	Emotion        Emotion `json:"emotion"`
	LexiconEmotion Emotion `json:"lexicon_emotion,omitempty"`
	TopWords       string  `json:"top_words"`
	RhymeScore     int     `json:"rhyme_score"`
	BigramCount    int     `json:"bigram_count"`
}

type AnalyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type AnalyzeResponse struct {
	SongAnalysis
	Bigrams []Bigram `json:"bigrams"`
}

type CleanRequest struct {
	Text      string `json:"text"`
	Language  string `json:"language"`
	KeepLines bool   `json:"keep_lines"`
}

type SongsRequest struct {
	Artist   string `json:"artist"`
	MaxSongs int    `json:"max_songs"`
}

type TaskStatus struct {
	ID     string       `json:"id"`
	Phase  string       `json:"phase"`
	Artist string       `json:"artist"`
	Error  string       `json:"error,omitempty"`
	Songs  []SongRecord `json:"songs,omitempty"`
}
