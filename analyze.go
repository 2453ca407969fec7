package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"lyrics-analysis/config"
	"lyrics-analysis/dataset"
	"lyrics-analysis/models"
	"lyrics-analysis/services"
	"lyrics-analysis/subcmd"
)

type datasetReport struct {
	Summary  services.Summary      `json:"summary"`
	Words    []models.WordCount    `json:"words"`
	Bigrams  []models.BigramCount  `json:"bigrams"`
	Analyses []models.SongAnalysis `json:"analyses"`
}

func analyze(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	subcmd := subcmd.New("analyze", "analyze lyrics from a file or stdin, or every song of the dataset with -dataset").
		SetArg("file", "path", "lyrics file; stdin when omitted")
	var (
		lang        = subcmd.String("lang", cfg.Language, "lyrics language, Spanish or English")
		lexiconPath = subcmd.String("lexicon", cfg.LexiconPath, "emotion lexicon JSON file, empty to skip")
		fromDataset = subcmd.Bool("dataset", false, "analyze the stored songs and save the results")
		datasetPath = subcmd.String("dataset-path", cfg.DatasetPath, "dataset file used by -dataset")
		artist      = subcmd.String("artist", "", "with -dataset, only analyze this artist")
		top         = subcmd.Int("top", 7, "with -dataset, number of top words and bigrams to report")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	language, err := models.ParseLanguage(*lang)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(cfg, *lexiconPath)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if !*fromDataset {
		text, err := readInput(subcmd.Arg(), stdin)
		if err != nil {
			return err
		}
		analysis, bigrams := analyzer.Analyze("", text, language)
		if bigrams == nil {
			bigrams = []models.Bigram{}
		}
		return enc.Encode(models.AnalyzeResponse{SongAnalysis: analysis, Bigrams: bigrams})
	}

	store, err := dataset.Open(*datasetPath)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := analyzeDataset(store, analyzer, *artist, language, *top)
	if err != nil {
		return err
	}
	return enc.Encode(report)
}

func newAnalyzer(cfg *config.Config, lexiconPath string) (*services.Analyzer, error) {
	cleaner, err := services.NewDefaultCleaner(cfg.StopWordsPaths...)
	if err != nil {
		return nil, err
	}

	var lexicon *services.Lexicon
	if lexiconPath != "" {
		lexicon, err = services.LoadLexicon(lexiconPath)
		if err != nil {
			return nil, err
		}
	}

	emotions := services.NewEmotionClassifier(services.NewVaderScorer())
	return services.NewAnalyzer(cleaner, emotions, lexicon), nil
}

func analyzeDataset(store *dataset.Store, analyzer *services.Analyzer, artist string, lang models.Language, top int) (*datasetReport, error) {
	songs, err := store.Songs(artist)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, errors.New("no songs in the dataset; run 'lyrics fetch -save' first")
	}

	report := &datasetReport{}
	records := make([]models.SongRecord, 0, len(songs))
	cleaned := make(map[string]string, len(songs))
	var corpus []string

	for _, song := range songs {
		rec := song.Record()
		analysis := analyzer.AnalyzeSong(rec, lang)
		if err := store.SaveAnalysis(song.ID, lang, analysis); err != nil {
			return nil, err
		}

		records = append(records, rec)
		report.Analyses = append(report.Analyses, analysis)
		cleaned[rec.Artist+" — "+rec.Title] = analysis.CleanLyrics
		corpus = append(corpus, analysis.CleanLyrics)
	}

	report.Summary = services.Summarize(records, report.Analyses)
	report.Words, _, _ = services.WordFrequencies(cleaned, top)
	report.Bigrams = services.TopBigrams(services.Bigrams(corpus), top)

	log.Printf("analyzed %d songs", len(songs))
	return report, nil
}
