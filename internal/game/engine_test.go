package game

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeAllCorrect(t *testing.T) {
	round := Grade("CRANE", "CRANE")
	require.Len(t, round, 5)
	for i, c := range round {
		assert.Equal(t, VerdictCorrect, c.Verdict, "position %d", i)
	}
}

func TestGradeMixed(t *testing.T) {
	// CRANE vs REACT: R and E and C are in the target elsewhere, A matches
	// its position, T is absent.
	got := Grade("REACT", "CRANE")
	want := Round{
		{Letter: "R", Verdict: VerdictPresent},
		{Letter: "E", Verdict: VerdictPresent},
		{Letter: "A", Verdict: VerdictCorrect},
		{Letter: "C", Verdict: VerdictPresent},
		{Letter: "T", Verdict: VerdictAbsent},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grade mismatch (-want +got):\n%s", diff)
	}
}

func TestGradeDuplicateLettersNotLimited(t *testing.T) {
	// ABBEY contains two Bs; the third B in the guess still grades present
	// because the rule checks containment only.
	got := Grade("BOBBY", "ABBEY")
	want := Round{
		{Letter: "B", Verdict: VerdictPresent},
		{Letter: "O", Verdict: VerdictAbsent},
		{Letter: "B", Verdict: VerdictCorrect},
		{Letter: "B", Verdict: VerdictPresent},
		{Letter: "Y", Verdict: VerdictCorrect},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grade mismatch (-want +got):\n%s", diff)
	}
}

func TestGradeProperty(t *testing.T) {
	target := "SHARD"
	guess := "SPARS"
	for i, c := range Grade(guess, target) {
		if guess[i] == target[i] {
			assert.Equal(t, VerdictCorrect, c.Verdict, "position %d", i)
			continue
		}
		contained := false
		for j := 0; j < len(target); j++ {
			if target[j] == guess[i] {
				contained = true
			}
		}
		if contained {
			assert.Equal(t, VerdictPresent, c.Verdict, "position %d", i)
		} else {
			assert.Equal(t, VerdictAbsent, c.Verdict, "position %d", i)
		}
	}
}

func TestGradeLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Grade("TOOLONGER", "CRANE") })
}

func TestRecordGuessUpdatesState(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g := New("CRANE", t0)
	require.Equal(t, 0, g.GuessCount)

	t1 := t0.Add(30 * time.Second)
	g.RecordGuess(Grade("SLATE", g.Target), t1)
	assert.Equal(t, 1, g.GuessCount)
	assert.Len(t, g.History, 1)
	assert.Equal(t, t1, g.LastActivity)
	assert.False(t, g.IsExhausted())
}

func TestRecordGuessPastBudgetPanics(t *testing.T) {
	now := time.Now()
	g := New("CRANE", now)
	for i := 0; i < GuessBudget; i++ {
		g.RecordGuess(Grade("SLATE", g.Target), now)
	}
	require.True(t, g.IsExhausted())
	assert.Panics(t, func() { g.RecordGuess(Grade("SLATE", g.Target), now) })
}

func TestIsWonCaseInsensitive(t *testing.T) {
	g := New("CRANE", time.Now())
	assert.True(t, g.IsWon("crane"))
	assert.True(t, g.IsWon("CRANE"))
	assert.False(t, g.IsWon("SLATE"))
}

func TestRenderStateIsACopy(t *testing.T) {
	now := time.Now()
	g := New("CRANE", now)
	g.RecordGuess(Grade("SLATE", g.Target), now)

	view := g.RenderState()
	view[0][0].Letter = "X"
	assert.Equal(t, "S", g.History[0][0].Letter)
}
