package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const lrclibAPI = "https://lrclib.net/api"

var (
	reParens = regexp.MustCompile(`\s*[\(\[].*?[\)\]]\s*`)

	reSuffix = regexp.MustCompile(
		`(?i)\s*-\s*(remaster|live|demo|remix|deluxe|bonus|edit|version|` +
			`mix|single|acoustic|instrumental|radio|extended|original).*`)
)

// LyricsLookup finds plain lyrics for a song when the lyrics page has none.
// found is false when the service answered but knows no lyrics.
type LyricsLookup interface {
	Lookup(ctx context.Context, artist, title string) (lyrics string, found bool, err error)
}

// LRCLib searches lrclib.net, which serves plain lyrics without a token.
type LRCLib struct {
	baseURL string
	client  *http.Client
}

func NewLRCLib(timeout time.Duration) *LRCLib {
	return &LRCLib{
		baseURL: lrclibAPI,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another API root.
func (l *LRCLib) WithBaseURL(base string) *LRCLib {
	l.baseURL = strings.TrimRight(base, "/")
	return l
}

type lrclibResult struct {
	PlainLyrics string `json:"plainLyrics"`
}

func (l *LRCLib) Lookup(ctx context.Context, artist, title string) (string, bool, error) {
	params := url.Values{
		"artist_name": {artist},
		"track_name":  {cleanTitle(title)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", apiUserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return "", false, fmt.Errorf("lrclib: %w", err)
	}

	var results []lrclibResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", false, fmt.Errorf("lrclib: parse error: %w", err)
	}

	for _, r := range results {
		if lyrics := strings.TrimSpace(r.PlainLyrics); lyrics != "" {
			return lyrics, true, nil
		}
	}
	log.Printf("[lrclib] no lyrics: %s — %s", artist, title)
	return "", false, nil
}

// cleanTitle drops bracketed notes and release suffixes such as
// "(feat. X)" or "- Remastered 2011".
func cleanTitle(title string) string {
	title = reParens.ReplaceAllString(title, " ")
	title = reSuffix.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
