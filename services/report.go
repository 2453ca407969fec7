package services

import (
	"gonum.org/v1/gonum/stat"

	"lyrics-analysis/models"
)

// Summary describes a set of analyzed songs.
type Summary struct {
	Songs           int                    `json:"songs"`
	RhymeMean       float64                `json:"rhyme_mean"`
	RhymeStdDev     float64                `json:"rhyme_stddev"`
	PageviewsMean   float64                `json:"pageviews_mean"`
	RhymeViewsCorr  float64                `json:"rhyme_pageviews_corr"`
	Emotions        map[models.Emotion]int `json:"emotions"`
	LexiconEmotions map[models.Emotion]int `json:"lexicon_emotions,omitempty"`
}

// Summarize aggregates analyses with the records they were computed from;
// both slices are matched by index.
func Summarize(records []models.SongRecord, analyses []models.SongAnalysis) Summary {
	sum := Summary{
		Songs:    len(analyses),
		Emotions: make(map[models.Emotion]int),
	}
	if len(analyses) == 0 {
		return sum
	}

	rhymes := make([]float64, len(analyses))
	views := make([]float64, len(analyses))
	for i, a := range analyses {
		rhymes[i] = float64(a.RhymeScore)
		if i < len(records) {
			views[i] = float64(records[i].Pageviews)
		}

		sum.Emotions[a.Emotion]++
		if a.LexiconEmotion != "" {
			if sum.LexiconEmotions == nil {
				sum.LexiconEmotions = make(map[models.Emotion]int)
			}
			sum.LexiconEmotions[a.LexiconEmotion]++
		}
	}

	sum.PageviewsMean = stat.Mean(views, nil)
	if len(analyses) == 1 {
		sum.RhymeMean = rhymes[0]
		return sum
	}

	sum.RhymeMean, sum.RhymeStdDev = stat.MeanStdDev(rhymes, nil)
	if !constant(rhymes) && !constant(views) {
		sum.RhymeViewsCorr = stat.Correlation(rhymes, views, nil)
	}

	return sum
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
