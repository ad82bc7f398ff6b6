// internal/game/types.go
//
// Core type definitions for a single Wordle session.
// Defines:
//   - Verdict: per-letter result of a guess (correct/present/absent).
//   - Cell, Round: one graded letter and one graded guess.
//   - Game: state for a single in-progress game instance.

package game

import "time"

// Verdict represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the word and in the correct spot.
//   - "present": letter is in the word but in a different spot.
//   - "absent":  letter is not in the word in any spot.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

const (
	// WordLength is the fixed length of every target and guess.
	WordLength = 5
	// GuessBudget is the maximum number of guesses per game.
	GuessBudget = 6
)

// Cell is one graded letter of a guess.
type Cell struct {
	Letter  string  `json:"letter"`
	Verdict Verdict `json:"verdict"`
}

// Round is the graded form of one whole guess, in entry order.
type Round []Cell

// Game holds the state of a single game instance. Instances are owned by the
// session registry and are only ever touched under its lock.
type Game struct {
	Target       string // the hidden word, uppercase, never mutated
	GuessCount   int    // accepted guesses so far
	History      []Round
	CreatedAt    time.Time
	LastActivity time.Time // refreshed on every accepted guess; drives expiry
	BroadcastRef string    // ref of the latest board broadcast, "" if none
}
