// internal/dict/dict.go
//
// Dictionary definition lookup, used when a finished game reveals its word.
// Failures are never surfaced: a lookup that goes wrong logs at warn level
// and yields an empty definition.

package dict

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public dictionary endpoint; the word is appended.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

// Client fetches short definitions for words.
type Client struct {
	base string
	http *http.Client
}

// New constructs a Client. An empty base falls back to DefaultBaseURL.
func New(base string) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// entry mirrors just the part of the response we read:
// [0].meanings[0].definitions[0].definition
type entry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Define returns the first definition found for word, or "" on any failure.
func (c *Client) Define(ctx context.Context, word string) string {
	url := c.base + strings.ToLower(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("building definition request")
		return ""
	}
	res, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("fetching definition")
		return ""
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return ""
	}

	var entries []entry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		log.Warn().Err(err).Str("word", word).Msg("reading definition")
		return ""
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 || len(entries[0].Meanings[0].Definitions) == 0 {
		return ""
	}
	return entries[0].Meanings[0].Definitions[0].Definition
}
