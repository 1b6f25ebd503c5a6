package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/creature-match/internal/core"
)

// Result is one finished game as stored in match3_results.
type Result struct {
	ID             int64
	Session        string
	GameID         string
	Mode           string
	Level          int
	Won            bool
	Score          int
	MovesUsed      int
	LongestCascade int
	Cleared        int
	DurationSecs   int
	CreatedAt      time.Time
}

// ResultFromGame converts the platform's game summary into a stored result.
func ResultFromGame(session string, r core.GameResult) Result {
	return Result{
		Session:        session,
		GameID:         r.GameID,
		Mode:           r.Mode,
		Level:          r.Level,
		Won:            r.Won,
		Score:          r.Score,
		MovesUsed:      r.MovesUsed,
		LongestCascade: r.LongestCascade,
		Cleared:        r.Cleared,
		DurationSecs:   r.DurationSecs,
	}
}

// SaveResult records a finished game. Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.Session == "" || r.GameID == "" {
		return 0, fmt.Errorf("storage: result needs a session and a game ID")
	}

	res, err := s.db.Exec(
		`INSERT INTO match3_results
		 (session, game_id, mode, level, won, score, moves_used, longest_cascade, cleared, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Session,
		r.GameID,
		r.Mode,
		r.Level,
		boolToInt(r.Won),
		r.Score,
		r.MovesUsed,
		r.LongestCascade,
		r.Cleared,
		r.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResults returns the latest results for a game, newest first.
// An empty gameID returns results across all games.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, session, game_id, mode, level, won, score, moves_used,
	                 longest_cascade, cleared, duration_secs, created_at
	          FROM match3_results`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	return s.queryResults(query, args...)
}

// SessionResults returns every result recorded by one session, oldest first.
func (s *Store) SessionResults(session string) ([]Result, error) {
	return s.queryResults(
		`SELECT id, session, game_id, mode, level, won, score, moves_used,
		        longest_cascade, cleared, duration_secs, created_at
		 FROM match3_results
		 WHERE session = ?
		 ORDER BY id ASC`,
		session,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r         Result
			won       int
			createdAt any
		)
		if err := rows.Scan(
			&r.ID,
			&r.Session,
			&r.GameID,
			&r.Mode,
			&r.Level,
			&won,
			&r.Score,
			&r.MovesUsed,
			&r.LongestCascade,
			&r.Cleared,
			&r.DurationSecs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Won = won != 0
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
