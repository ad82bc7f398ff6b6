// internal/game/engine.go
//
// Game instance engine: construction, grading, and state transitions for a
// single session.
//
// Notes:
//   - Grading is the simple single-pass rule: exact match, else contained
//     anywhere, else absent. Duplicate guess letters are not limited by how
//     many unmatched occurrences remain in the target.
//   - Inputs reaching Grade and RecordGuess have already been validated by
//     the registry; a length mismatch here is a bug and panics.
package game

import (
	"fmt"
	"strings"
	"time"
)

// New constructs a fresh instance around an already-chosen target word.
// The target must be uppercase and exactly WordLength letters.
func New(target string, now time.Time) *Game {
	return &Game{
		Target:       target,
		History:      []Round{},
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Grade evaluates a guess against a target, one verdict per position:
// correct if the letter matches at that position, present if the target
// contains it anywhere else, absent otherwise. Both strings must be
// uppercase ASCII of equal length.
func Grade(guess, target string) Round {
	if len(guess) != len(target) {
		panic(fmt.Sprintf("game: grading %q against %q: length mismatch", guess, target))
	}
	round := make(Round, len(guess))
	for i := 0; i < len(guess); i++ {
		v := VerdictAbsent
		switch {
		case guess[i] == target[i]:
			v = VerdictCorrect
		case strings.IndexByte(target, guess[i]) >= 0:
			v = VerdictPresent
		}
		round[i] = Cell{Letter: string(guess[i]), Verdict: v}
	}
	return round
}

// RecordGuess appends one graded guess to the history, bumps the guess count
// and refreshes the activity timestamp. Callers must not record past the
// guess budget; the registry removes exhausted instances immediately.
func (g *Game) RecordGuess(round Round, now time.Time) {
	if g.GuessCount >= GuessBudget {
		panic(fmt.Sprintf("game: recording guess %d past budget %d", g.GuessCount+1, GuessBudget))
	}
	g.GuessCount++
	g.History = append(g.History, round)
	g.LastActivity = now
}

// IsWon reports whether guess matches the target, case-insensitively.
func (g *Game) IsWon(guess string) bool {
	return strings.EqualFold(guess, g.Target)
}

// IsExhausted reports whether the guess budget has been used up.
func (g *Game) IsExhausted() bool {
	return g.GuessCount >= GuessBudget
}

// RenderState returns a copy of the graded rounds for display. The copy
// keeps instances from leaking outside the registry's lock.
func (g *Game) RenderState() []Round {
	out := make([]Round, len(g.History))
	for i, r := range g.History {
		rc := make(Round, len(r))
		copy(rc, r)
		out[i] = rc
	}
	return out
}
