package services

import (
	"strings"

	"lyrics-analysis/models"
)

const (
	joyThreshold      = 0.5
	negativeThreshold = 0.5
	neutralThreshold  = 0.7
)

var angerWords = map[models.Language][]string{
	models.English: {"no", "never", "hate", "stop"},
	models.Spanish: {"no", "nunca", "odio", "basta"},
}

// EmotionClassifier labels lyrics as joy, anger, sadness or neutral from
// their sentiment proportions.
type EmotionClassifier struct {
	scorer SentimentScorer
}

func NewEmotionClassifier(scorer SentimentScorer) *EmotionClassifier {
	return &EmotionClassifier{scorer: scorer}
}

type emotionRule struct {
	label models.Emotion
	hit   bool
}

// Classify evaluates the rules in the order joy, anger, sadness, neutral and
// returns the first that holds. When none holds the result is joy.
func (ec *EmotionClassifier) Classify(text string, lang models.Language) models.Emotion {
	s := ec.scorer.Score(text)

	negative := s.Negative > negativeThreshold
	angry := hasAngerWord(text, lang)

	rules := []emotionRule{
		{models.Joy, s.Positive > joyThreshold},
		{models.Anger, negative && angry},
		{models.Sadness, negative && !angry},
		{models.Neutral, s.Neutral > neutralThreshold},
	}

	best := rules[0]
	for _, r := range rules[1:] {
		if r.hit && !best.hit {
			best = r
		}
	}
	return best.label
}

func hasAngerWord(text string, lang models.Language) bool {
	words := angerWords[lang]
	for _, tok := range strings.Fields(text) {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}
