package history

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		channel TEXT NOT NULL,
		player TEXT NOT NULL,
		target TEXT NOT NULL,
		guesses INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		finished_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	return NewStore(db)
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, outcome := range []string{"won", "lost", "conceded"} {
		require.NoError(t, s.Record(ctx, Result{
			Channel:    "general",
			Player:     "p1",
			Target:     "CRANE",
			Guesses:    i + 1,
			Outcome:    outcome,
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "conceded", got[0].Outcome)
	assert.Equal(t, "lost", got[1].Outcome)
	assert.Equal(t, base.Add(2*time.Minute), got[0].FinishedAt)
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
