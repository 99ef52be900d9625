package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/math-master/backend/internal/domain/mocktest"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL,
    test_id TEXT NOT NULL,
    test_title TEXT NOT NULL,
    score INTEGER NOT NULL,
    correct_count INTEGER NOT NULL,
    total_questions INTEGER NOT NULL,
    accuracy_percent INTEGER NOT NULL,
    time_spent_seconds INTEGER NOT NULL,
    completed_at TEXT NOT NULL,
    details TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_username ON results(username, id);
`

// SQLiteStore keeps result history in a local SQLite database. The scalar
// columns exist for the export and history views; the full Result,
// breakdown included, lives in the details JSON column.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, username string, result mocktest.Result) error {
	details, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (
			username, test_id, test_title, score, correct_count,
			total_questions, accuracy_percent, time_spent_seconds,
			completed_at, details
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		username, result.TestID, result.TestTitle, result.Score, result.CorrectCount,
		result.TotalQuestions, result.AccuracyPercent, result.TimeSpentSeconds,
		result.CompletedAt.UTC().Format(time.RFC3339), string(details),
	)
	return err
}

func (s *SQLiteStore) List(ctx context.Context, username string) ([]mocktest.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT details FROM results WHERE username = ? ORDER BY id DESC",
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []mocktest.Result{}
	for rows.Next() {
		var details string
		if err := rows.Scan(&details); err != nil {
			return nil, err
		}
		var result mocktest.Result
		if err := json.Unmarshal([]byte(details), &result); err != nil {
			return nil, fmt.Errorf("failed to decode stored result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
