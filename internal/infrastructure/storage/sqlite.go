package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"svw.info/magicsquares/internal/domain"
	"svw.info/magicsquares/internal/ports"
)

// Ledger indexes finds and completed values in a SQLite database.
type Ledger struct {
	db   *sql.DB
	path string
}

// OpenLedger creates or opens the ledger at path.
func OpenLedger(ctx context.Context, path string) (*Ledger, error) {
	if path == "" {
		return nil, errors.New("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	// Batch workers share one writer.
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db, path: path}
	if err := l.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize ledger schema: %w", err)
	}
	return l, nil
}

func (l *Ledger) Close() error { return l.db.Close() }

func (l *Ledger) Path() string { return l.path }

func (l *Ledger) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS finds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		label TEXT NOT NULL,
		number TEXT NOT NULL,
		class TEXT NOT NULL,
		count INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		artifact TEXT NOT NULL,
		grid TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_finds_class ON finds(class);
	CREATE INDEX IF NOT EXISTS idx_finds_label ON finds(label);

	CREATE TABLE IF NOT EXISTS values_done (
		label TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		number TEXT NOT NULL,
		factor_pairs INTEGER NOT NULL,
		progressions INTEGER NOT NULL,
		pairs INTEGER NOT NULL,
		finds INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		done_at INTEGER NOT NULL
	);
	`
	_, err := l.db.ExecContext(ctx, schema)
	return err
}

func (l *Ledger) Record(ctx context.Context, runID string, f *domain.Find, artifact string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO finds (run_id, label, number, class, count, seq, artifact, grid, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, f.Value.Label(), f.Number.String(), f.Class.Tag(), f.Evaluation.Count, f.Seq,
		artifact, f.Evaluation.Grid.String(), time.Now().UnixNano(),
	)
	return err
}

// List returns finds newest first. ClassNone lists every class; limit <= 0 means no limit.
func (l *Ledger) List(ctx context.Context, class domain.Class, limit int) ([]domain.FindMeta, error) {
	q := `SELECT run_id, label, number, class, count, seq, artifact, grid, created_at FROM finds`
	var args []any
	if class != domain.ClassNone {
		q += ` WHERE class = ?`
		args = append(args, class.Tag())
	}
	q += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FindMeta
	for rows.Next() {
		var m domain.FindMeta
		if err := rows.Scan(&m.RunID, &m.Label, &m.Number, &m.Class, &m.Count, &m.Seq,
			&m.Artifact, &m.Grid, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (l *Ledger) MarkDone(ctx context.Context, runID string, v domain.Value, st ports.Stats) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO values_done
		 (label, run_id, number, factor_pairs, progressions, pairs, finds, duration_ms, done_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Label(), runID, v.Number().String(), st.FactorPairs, st.Progressions, st.Pairs,
		st.Finds, st.Duration.Milliseconds(), time.Now().UnixNano(),
	)
	return err
}

func (l *Ledger) Done(ctx context.Context, v domain.Value) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM values_done WHERE label = ?`, v.Label()).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
