package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/episcope/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	analysis   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_analyses_owner_id ON analyses(owner_id);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, ownerID string, analysis *model.TrendAnalysisResult) error {
	if analysis == nil || analysis.AnalysisID == "" {
		return eris.New("sqlite: analysis missing id")
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal analysis")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, owner_id, analysis, created_at) VALUES (?, ?, ?, ?)`,
		analysis.AnalysisID, ownerID, string(analysisJSON), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert analysis %s", analysis.AnalysisID)
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, analysisID string) (*StoredAnalysis, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT owner_id, analysis, created_at FROM analyses WHERE id = ?`,
		analysisID,
	)

	var sa StoredAnalysis
	var analysisJSON string
	err := row.Scan(&sa.OwnerID, &analysisJSON, &sa.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get analysis %s", analysisID)
	}
	if err := json.Unmarshal([]byte(analysisJSON), &sa.Analysis); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal analysis")
	}
	return &sa, nil
}

func (s *SQLiteStore) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]StoredAnalysis, error) {
	query := `SELECT owner_id, analysis, created_at FROM analyses WHERE 1=1`
	var args []any

	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list analyses")
	}
	defer rows.Close()

	var out []StoredAnalysis
	for rows.Next() {
		var sa StoredAnalysis
		var analysisJSON string
		if err := rows.Scan(&sa.OwnerID, &analysisJSON, &sa.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan analysis")
		}
		if err := json.Unmarshal([]byte(analysisJSON), &sa.Analysis); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal analysis")
		}
		out = append(out, sa)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list analyses iterate")
}
