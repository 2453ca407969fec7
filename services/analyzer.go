package services

import (
	"maps"
	"regexp"
	"slices"
	"sort"
	"strings"

	"lyrics-analysis/models"
)

const topWordsCount = 10

var lastWordRe = regexp.MustCompile(`([\p{L}\p{M}\p{N}_]+)\s*\n`)

// TopWords returns the ten most frequent whitespace tokens of text, most
// frequent first, joined by spaces.
func TopWords(text string) string {
	return strings.Join(TopWordsN(text, topWordsCount), " ")
}

// TopWordsN returns up to n tokens ordered by descending count. Equal counts
// keep the order in which the tokens first appeared.
func TopWordsN(text string, n int) []string {
	order, counts := tally(strings.Fields(text))
	return rank(order, counts, n)
}

// tally counts keys, also returning each distinct key once in order of
// first appearance.
func tally[K comparable](keys []K) ([]K, map[K]int) {
	counts := make(map[K]int)
	var order []K
	for _, k := range keys {
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}
	return order, counts
}

// rank sorts order by descending count, stable on ties, and keeps the first
// n keys. A negative n keeps all of them.
func rank[K comparable](order []K, counts map[K]int, n int) []K {
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if n >= 0 && len(order) > n {
		order = order[:n]
	}
	return order
}

// Bigrams pairs every token of each lyric with its successor. Pairs never
// cross from one lyric into the next.
func Bigrams(lyrics []string) []models.Bigram {
	var result []models.Bigram

	for _, lyric := range lyrics {
		words := strings.Fields(lyric)
		for i := 0; i+1 < len(words); i++ {
			result = append(result, models.Bigram{First: words[i], Second: words[i+1]})
		}
	}

	return result
}

// TopBigrams counts repeated bigrams and returns the n most common, ties in
// order of first appearance.
func TopBigrams(bigrams []models.Bigram, n int) []models.BigramCount {
	order, counts := tally(bigrams)

	top := make([]models.BigramCount, 0, len(order))
	for _, b := range rank(order, counts, n) {
		top = append(top, models.BigramCount{Bigram: b, Count: counts[b]})
	}
	return top
}

// LastWords returns the word that ends each line. Lines ending in
// punctuation, and a final line with no trailing newline, yield nothing.
func LastWords(lyrics string) []string {
	matches := lastWordRe.FindAllStringSubmatch(lyrics, -1)

	words := make([]string, 0, len(matches))
	for _, m := range matches {
		words = append(words, m[1])
	}
	return words
}

// RhymeScore counts consecutive line endings that share their last two
// characters.
func RhymeScore(lyrics string) int {
	words := LastWords(lyrics)

	score := 0
	for i := 0; i+1 < len(words); i++ {
		if suffix(words[i], 2) == suffix(words[i+1], 2) {
			score++
		}
	}
	return score
}

func suffix(word string, n int) string {
	runes := []rune(word)
	if len(runes) <= n {
		return word
	}
	return string(runes[len(runes)-n:])
}

// WordFrequencies ranks the tokens of already cleaned lyrics keyed by song
// title. Songs are read in title order; ties keep the word that shows up
// first. Each word lists the titles that use it. It also returns the number
// of distinct words and of tokens.
func WordFrequencies(lyricsByTitle map[string]string, n int) ([]models.WordCount, int, int) {
	var tokens []string
	titlesOf := make(map[string][]string)

	for _, title := range slices.Sorted(maps.Keys(lyricsByTitle)) {
		for _, w := range strings.Fields(lyricsByTitle[title]) {
			tokens = append(tokens, w)
			if used := titlesOf[w]; len(used) == 0 || used[len(used)-1] != title {
				titlesOf[w] = append(used, title)
			}
		}
	}

	order, counts := tally(tokens)
	distinct := len(order)

	words := make([]models.WordCount, 0, len(order))
	for _, w := range rank(order, counts, n) {
		words = append(words, models.WordCount{Word: w, Count: counts[w], Tracks: titlesOf[w]})
	}
	return words, distinct, len(tokens)
}
