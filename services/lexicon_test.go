package services

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"lyrics-analysis/models"
)

func TestLexiconClassify(t *testing.T) {
	lex := NewLexicon(
		LexiconEntry{Emotion: "joy", Triggers: []string{"happy", "smile"}},
		LexiconEntry{Emotion: "sadness", Triggers: []string{"cry", "tears", "happy"}},
	)

	tests := []struct {
		name string
		text string
		want models.Emotion
	}{
		{"majority", "happy smile cry", "joy"},
		{"other emotion", "cry tears smile", "sadness"},
		{"nothing matches", "road", models.Neutral},
		{"empty text", "", models.Neutral},
		{"tie goes to the first emotion", "smile cry", "joy"},
		{"shared trigger counts for the first emotion", "happy tears", "joy"},
		{"exact tokens only", "happy! smiles", models.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lex.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestLexiconCounts(t *testing.T) {
	lex := NewLexicon(
		LexiconEntry{Emotion: "joy", Triggers: []string{"happy"}},
		LexiconEntry{Emotion: "sadness", Triggers: []string{"happy", "cry"}},
	)

	got := lex.Counts("happy cry happy")
	if want := []int{2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Counts = %v, want %v", got, want)
	}
}

func TestEmptyLexicon(t *testing.T) {
	if got := NewLexicon().Classify("happy cry"); got != models.Neutral {
		t.Errorf("Classify = %s, want %s", got, models.Neutral)
	}
}

func TestParseLexiconKeepsOrder(t *testing.T) {
	input := `{"zeal": ["fire"], "awe": ["sky"], "calm": [], "zeal": ["burn"]}`

	lex, err := ParseLexicon(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseLexicon: %v", err)
	}

	if want := []string{"zeal", "awe", "calm"}; !reflect.DeepEqual(lex.Emotions(), want) {
		t.Errorf("Emotions = %v, want %v", lex.Emotions(), want)
	}
	if got := lex.Classify("fire sky"); got != "awe" {
		t.Errorf("replaced triggers still match: Classify = %s", got)
	}
	if got := lex.Classify("burn sky"); got != "zeal" {
		t.Errorf("Classify = %s, want zeal", got)
	}
}

func TestParseLexiconErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"array", `["joy"]`},
		{"not a list", `{"joy": "happy"}`},
		{"numbers", `{"joy": [1, 2]}`},
		{"truncated", `{"joy": ["happy"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLexicon(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ParseLexicon(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadLexicon(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadLexicon of a missing file succeeded")
	}

	path := filepath.Join(dir, "lexicon.json")
	if err := os.WriteFile(path, []byte(`{"love": ["amor"], "anger": ["rabia"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if got := lex.Classify("rabia rabia amor"); got != "anger" {
		t.Errorf("Classify = %s, want anger", got)
	}
}

func TestBundledLexicon(t *testing.T) {
	lex, err := LoadLexicon(filepath.Join("..", "data", "emotion_lexicon.json"))
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if len(lex.Emotions()) == 0 {
		t.Fatal("bundled lexicon is empty")
	}
	if lex.Emotions()[0] != "joy" {
		t.Errorf("first emotion = %s, want joy", lex.Emotions()[0])
	}
}
