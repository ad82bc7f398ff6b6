// internal/history/store.go
//
// Finished-game history persisted in SQLite. Live session state never
// touches the database; only terminal results land here, best-effort, so a
// write failure costs a log line and nothing else.

package history

import (
	"context"
	"database/sql"
	"time"
)

// Result is one finished game.
type Result struct {
	Channel    string    `json:"channel"`
	Player     string    `json:"player"`
	Target     string    `json:"target"`
	Guesses    int       `json:"guesses"`
	Outcome    string    `json:"outcome"` // won | lost | conceded
	FinishedAt time.Time `json:"finishedAt"`
}

// Store wraps the results table.
type Store struct{ db *sql.DB }

// NewStore constructs a Store over an opened database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts one finished game.
func (s *Store) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results(channel, player, target, guesses, outcome, finished_at)
		 VALUES(?,?,?,?,?,?)`,
		r.Channel, r.Player, r.Target, r.Guesses, r.Outcome,
		r.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Recent returns up to limit results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT channel, player, target, guesses, outcome, finished_at
		 FROM results ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var r Result
		var finished string
		if err := rows.Scan(&r.Channel, &r.Player, &r.Target, &r.Guesses, &r.Outcome, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
