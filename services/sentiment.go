package services

import (
	"github.com/jonreiter/govader"

	"lyrics-analysis/models"
)

// SentimentScorer splits text into positive, negative and neutral
// proportions.
type SentimentScorer interface {
	Score(text string) models.Sentiment
}

// VaderScorer scores text with the VADER lexicon and rules.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Score(text string) models.Sentiment {
	s := v.analyzer.PolarityScores(text)
	return models.Sentiment{
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Compound: s.Compound,
	}
}

// ScorerFunc adapts a plain function to SentimentScorer.
type ScorerFunc func(text string) models.Sentiment

func (f ScorerFunc) Score(text string) models.Sentiment {
	return f(text)
}
