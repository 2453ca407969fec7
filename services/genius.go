package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"lyrics-analysis/cache"
)

const (
	geniusAPI        = "https://api.genius.com"
	geniusPerPage    = 50
	geniusMaxPages   = 100
	apiUserAgent     = "LyricsAnalysis/1.0"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var (
	sectionRe     = regexp.MustCompile(`\[.*?\]`)
	doubleBreakRe = regexp.MustCompile(`\n{2}`)
)

// Genius is an ArtistSource backed by the Genius API. Lyrics are scraped
// from the song pages because the API does not serve them. Like the lyrics
// pages themselves, every lyrics text starts with a "<title> Lyrics" line.
type Genius struct {
	token    string
	baseURL  string
	cache    *cache.SongCache
	fallback LyricsLookup
	client   *http.Client
}

// NewGenius returns a client whose requests give up after timeout. c may be
// nil to disable caching.
func NewGenius(token string, timeout time.Duration, c *cache.SongCache) *Genius {
	return &Genius{
		token:   token,
		baseURL: geniusAPI,
		cache:   c,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another API root.
func (g *Genius) WithBaseURL(base string) *Genius {
	g.baseURL = strings.TrimRight(base, "/")
	return g
}

// WithFallback sets where to look for lyrics a song page does not carry.
func (g *Genius) WithFallback(l LyricsLookup) *Genius {
	g.fallback = l
	return g
}

func (g *Genius) SearchArtist(ctx context.Context, name string, maxSongs int) (*Artist, error) {
	ref, err := g.findArtist(ctx, name)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		log.Printf("[genius] artist not found: %s", name)
		return nil, nil
	}

	artist := &Artist{ID: ref.ID, Name: orDefault(ref.Name, name)}
	log.Printf("[genius] found artist: %s (ID: %d)", artist.Name, artist.ID)

	summaries, err := g.artistSongs(ctx, artist.ID, maxSongs)
	if err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		song, err := g.song(ctx, summary.ID, artist.Name)
		if err != nil {
			return nil, err
		}
		artist.Songs = append(artist.Songs, song)
	}

	log.Printf("[genius] %s: %d songs", artist.Name, len(artist.Songs))
	return artist, nil
}

type geniusSearch struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				PrimaryArtist *ArtistRef `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// findArtist prefers a hit whose primary artist matches name and otherwise
// takes the first hit's primary artist.
func (g *Genius) findArtist(ctx context.Context, name string) (*ArtistRef, error) {
	var search geniusSearch
	if err := g.getJSON(ctx, "/search", url.Values{"q": {name}}, &search); err != nil {
		return nil, err
	}

	var first *ArtistRef
	for _, hit := range search.Response.Hits {
		ref := hit.Result.PrimaryArtist
		if ref == nil || ref.ID == 0 {
			continue
		}
		if first == nil {
			first = ref
		}
		if ref.Name != nil && strings.EqualFold(*ref.Name, name) {
			return ref, nil
		}
	}
	return first, nil
}

type geniusArtistSongs struct {
	Response struct {
		Songs    []Song `json:"songs"`
		NextPage *int   `json:"next_page"`
	} `json:"response"`
}

// artistSongs pages through the artist's songs by popularity, skipping
// songs where the artist is only featured.
func (g *Genius) artistSongs(ctx context.Context, artistID int64, maxSongs int) ([]Song, error) {
	var songs []Song

	page := 1
	for page > 0 && page <= geniusMaxPages && len(songs) < maxSongs {
		params := url.Values{
			"sort":     {"popularity"},
			"per_page": {strconv.Itoa(geniusPerPage)},
			"page":     {strconv.Itoa(page)},
		}

		var data geniusArtistSongs
		path := "/artists/" + strconv.FormatInt(artistID, 10) + "/songs"
		if err := g.getJSON(ctx, path, params, &data); err != nil {
			return nil, err
		}

		for _, s := range data.Response.Songs {
			if s.PrimaryArtist == nil || s.PrimaryArtist.ID != artistID {
				continue
			}
			songs = append(songs, s)
			if len(songs) >= maxSongs {
				break
			}
		}

		log.Printf("[genius] artist %d page %d: %d songs so far", artistID, page, len(songs))

		if data.Response.NextPage == nil {
			break
		}
		page = *data.Response.NextPage
	}

	return songs, nil
}

type geniusSong struct {
	Response struct {
		Song json.RawMessage `json:"song"`
	} `json:"response"`
}

// song loads the full song object and its lyrics, from the cache when
// possible.
func (g *Genius) song(ctx context.Context, id int64, artistName string) (Song, error) {
	if g.cache != nil {
		if entry, ok := g.cache.Get(id); ok {
			var song Song
			if err := json.Unmarshal(entry.Detail, &song); err == nil {
				if entry.Found {
					song.Lyrics = &entry.Lyrics
				}
				return song, nil
			}
		}
	}

	var data geniusSong
	if err := g.getJSON(ctx, "/songs/"+strconv.FormatInt(id, 10), url.Values{"text_format": {"plain"}}, &data); err != nil {
		return Song{}, err
	}

	var song Song
	if err := json.Unmarshal(data.Response.Song, &song); err != nil {
		return Song{}, fmt.Errorf("genius song %d: parse error: %w", id, err)
	}

	title := orDefault(song.Title, defaultTitle)

	// Failed requests return before the cache is written, so a later
	// fetch asks again.
	lyrics, found, err := g.scrapeLyrics(ctx, song.URL)
	if err != nil {
		return Song{}, err
	}
	source := "genius"
	if !found && g.fallback != nil {
		lyrics, found, err = g.fallback.Lookup(ctx, artistName, title)
		if err != nil {
			return Song{}, err
		}
		source = "lrclib"
	}

	if found {
		lyrics = title + " Lyrics\n" + lyrics
		song.Lyrics = &lyrics
		log.Printf("[genius] ✅ %s: %s — %s", source, artistName, title)
	} else {
		song.Lyrics = nil
		log.Printf("[genius] ❌ no lyrics: %s — %s", artistName, title)
	}

	if g.cache != nil {
		g.cache.Set(id, cache.Entry{
			Artist: artistName,
			Title:  title,
			Detail: data.Response.Song,
			Lyrics: lyrics,
			Found:  found,
		})
	}

	return song, nil
}

func (g *Genius) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	apiURL := g.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("User-Agent", apiUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("genius request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return fmt.Errorf("genius %s: %w", path, err)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("genius %s: parse error: %w", path, err)
	}
	return nil
}

// statusError turns a non-2xx response into an error carrying the start of
// the body.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		return fmt.Errorf("http status code %d; error reading body: %w", resp.StatusCode, err)
	}
	return fmt.Errorf("http status code %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// scrapeLyrics reads the lyrics off a song page. found is false only when
// the page loaded and carries no lyrics; anything else is an error.
func (g *Genius) scrapeLyrics(ctx context.Context, pageURL string) (string, bool, error) {
	if pageURL == "" {
		return "", false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("lyrics page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return "", false, fmt.Errorf("lyrics page %s: %w", pageURL, err)
	}

	lyrics, err := parseLyricsHTML(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("lyrics page %s: %w", pageURL, err)
	}
	return lyrics, lyrics != "", nil
}

// parseLyricsHTML collects the text of the page's lyrics containers, one
// line per <br>, with section headers such as [Chorus] removed.
func parseLyricsHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	doc.Find(`div[data-lyrics-container="true"]`).Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			getText(n, &sb)
		}
		sb.WriteString("\n")
	})

	lyrics := sectionRe.ReplaceAllString(sb.String(), "")
	lyrics = doubleBreakRe.ReplaceAllString(lyrics, "\n")
	return strings.TrimSpace(lyrics), nil
}

func getText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode && n.Data == "br" {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getText(c, sb)
	}
}
