package services

import "lyrics-analysis/models"

// Analyzer runs the full per-song analysis the way the lyric notebooks do:
// fold "tal vez" for Spanish, clean, then score.
type Analyzer struct {
	cleaner  *Cleaner
	emotions *EmotionClassifier
	lexicon  *Lexicon
}

// NewAnalyzer wires the pipeline. lexicon may be nil, in which case lexicon
// emotions are left empty.
func NewAnalyzer(cleaner *Cleaner, emotions *EmotionClassifier, lexicon *Lexicon) *Analyzer {
	return &Analyzer{
		cleaner:  cleaner,
		emotions: emotions,
		lexicon:  lexicon,
	}
}

func (a *Analyzer) Cleaner() *Cleaner {
	return a.cleaner
}

// Analyze scores a lyric body. Emotion reads the raw body, because VADER and
// the anger words need the stopwords; the other scores read cleaned text.
func (a *Analyzer) Analyze(title, body string, lang models.Language) (models.SongAnalysis, []models.Bigram) {
	words := body
	if lang == models.Spanish {
		words = NormalizePhrase(Letters(body))
	}
	clean := a.cleaner.Clean(words, lang)
	lines := a.cleaner.CleanLines(body)
	bigrams := Bigrams([]string{clean})

	result := models.SongAnalysis{
		Title:       title,
		CleanLyrics: clean,
		Emotion:     a.emotions.Classify(body, lang),
		TopWords:    TopWords(clean),
		RhymeScore:  RhymeScore(lines + "\n"),
		BigramCount: len(bigrams),
	}
	if a.lexicon != nil {
		result.LexiconEmotion = a.lexicon.Classify(clean)
	}

	return result, bigrams
}

// AnalyzeSong analyzes a fetched record, whose lyrics start with the lyrics
// page header line. Records without lyrics still get a row; their scores
// are those of the placeholder text.
func (a *Analyzer) AnalyzeSong(rec models.SongRecord, lang models.Language) models.SongAnalysis {
	result, _ := a.Analyze(rec.Title, StripFirstLine(rec.Lyrics), lang)
	return result
}
