// internal/words/words.go
//
// Word list management for the session engine.
//
// Responsibilities:
//   - Fetch the canonical guessable word list once at startup, either from a
//     remote JSON source or from a local line-per-word file override.
//   - Fall back to a one-word degraded lexicon when the source is
//     unavailable, so the process stays up (logged, non-fatal).
//   - Maintain a set for validity lookups and pick random targets.
//
// Constraints:
//   - Words are normalized to uppercase and filtered to exactly
//     game.WordLength ASCII letters.
//   - The lexicon is immutable after Load and safe for concurrent reads.

package words

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbot/internal/game"
)

// DefaultSourceURL is the canonical remote word list: a JSON array of
// {"word": "..."} entries.
const DefaultSourceURL = "https://raw.githubusercontent.com/mongodb-developer/bash-wordle/main/words.json"

// SentinelWord is the single entry of the degraded lexicon used when no
// word source is reachable.
const SentinelWord = "EMPTY"

const fetchTimeout = 15 * time.Second

// Lexicon is the loaded set of valid guessable words.
type Lexicon struct {
	words    []string
	set      map[string]struct{}
	degraded bool
}

type sourceEntry struct {
	Word string `json:"word"`
}

// Load builds the lexicon from filePath if non-empty, otherwise from url.
// Any failure degrades to the sentinel lexicon; Load never returns an error.
func Load(ctx context.Context, url, filePath string) *Lexicon {
	var (
		list []string
		err  error
	)
	if filePath != "" {
		list, err = readWordFile(filePath)
	} else {
		list, err = fetchRemote(ctx, url)
	}
	if err == nil && len(list) == 0 {
		err = fmt.Errorf("word source produced no usable words")
	}
	if err != nil {
		log.Warn().Err(err).Msg("word list unavailable, running degraded with a single word")
		return &Lexicon{
			words:    []string{SentinelWord},
			set:      map[string]struct{}{SentinelWord: {}},
			degraded: true,
		}
	}
	log.Info().Int("words", len(list)).Msg("word list loaded")
	return &Lexicon{words: list, set: toSet(list)}
}

// NewStatic builds a lexicon from a fixed list, normalizing and filtering
// the same way Load does. Invalid entries are dropped silently.
func NewStatic(list []string) *Lexicon {
	var out []string
	for _, raw := range list {
		if w, ok := normalize(raw); ok {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		out = []string{SentinelWord}
	}
	return &Lexicon{words: out, set: toSet(out)}
}

// fetchRemote performs the one-shot GET of the JSON word list.
func fetchRemote(ctx context.Context, url string) ([]string, error) {
	if url == "" {
		url = DefaultSourceURL
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("word source returned %s", res.Status)
	}

	var entries []sourceEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	var out []string
	for _, e := range entries {
		if w, ok := normalize(e.Word); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// readWordFile loads one word per line, keeping only valid entries.
func readWordFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(b), "\n") {
		if w, ok := normalize(line); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// normalize uppercases and validates a raw word.
func normalize(raw string) (string, bool) {
	w := strings.ToUpper(strings.TrimSpace(raw))
	if len(w) != game.WordLength || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// IsValid reports whether candidate is in the word list, case-insensitively.
func (l *Lexicon) IsValid(candidate string) bool {
	_, ok := l.set[strings.ToUpper(candidate)]
	return ok
}

// PickTarget returns a uniformly random word from the list. The list is
// never empty: Load guarantees at least the sentinel.
func (l *Lexicon) PickTarget() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(l.words))))
	return l.words[n.Int64()]
}

// Degraded reports whether the lexicon fell back to the sentinel word.
func (l *Lexicon) Degraded() bool { return l.degraded }

// Size returns the number of loaded words.
func (l *Lexicon) Size() int { return len(l.words) }
