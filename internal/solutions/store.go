// Package solutions archives optimizer candidates in SQLite so search
// results survive across invocations and can be ranked later.
package solutions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/san-kum/tokasim/internal/reactor"
)

// Candidate is one evaluated configuration.
type Candidate struct {
	ID            string
	Method        string // "random" or "spsa"
	Score         float64
	OperationTime float64 // s
	Failed        bool
	FailureCause  string
	Config        reactor.Config
	CreatedAt     time.Time
}

type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("solutions: database path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// Save upserts a candidate; the configuration is stored as YAML so the
// schema survives config field additions.
func (s *Store) Save(ctx context.Context, c Candidate) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := yaml.Marshal(c.Config)
	if err != nil {
		return err
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO candidates (id, created_at, method, score, operation_time, failed, failure_cause, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			method = excluded.method,
			score = excluded.score,
			operation_time = excluded.operation_time,
			failed = excluded.failed,
			failure_cause = excluded.failure_cause,
			config = excluded.config
	`, c.ID, createdAt.UTC().Format(time.RFC3339Nano), c.Method, c.Score,
		c.OperationTime, c.Failed, c.FailureCause, payload)
	return err
}

// Best returns the top-scoring candidates, highest first.
func (s *Store) Best(ctx context.Context, n int) ([]Candidate, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, created_at, method, score, operation_time, failed, failure_cause, config
		FROM candidates
		ORDER BY score DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var (
			c         Candidate
			createdAt string
			payload   []byte
		)
		if err := rows.Scan(&c.ID, &createdAt, &c.Method, &c.Score,
			&c.OperationTime, &c.Failed, &c.FailureCause, &payload); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("solutions: candidate %s: bad timestamp: %w", c.ID, err)
		}
		if err := yaml.Unmarshal(payload, &c.Config); err != nil {
			return nil, fmt.Errorf("solutions: candidate %s: decode config: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns one candidate by ID.
func (s *Store) Get(ctx context.Context, id string) (Candidate, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Candidate{}, false, err
	}

	var (
		c         Candidate
		createdAt string
		payload   []byte
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, created_at, method, score, operation_time, failed, failure_cause, config
		FROM candidates WHERE id = ?
	`, id).Scan(&c.ID, &createdAt, &c.Method, &c.Score,
		&c.OperationTime, &c.Failed, &c.FailureCause, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, false, nil
		}
		return Candidate{}, false, err
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Candidate{}, false, fmt.Errorf("solutions: candidate %s: bad timestamp: %w", id, err)
	}
	if err := yaml.Unmarshal(payload, &c.Config); err != nil {
		return Candidate{}, false, fmt.Errorf("solutions: candidate %s: decode config: %w", id, err)
	}
	return c, true, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("solutions: store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS candidates (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			method TEXT NOT NULL,
			score REAL NOT NULL,
			operation_time REAL NOT NULL,
			failed INTEGER NOT NULL,
			failure_cause TEXT NOT NULL DEFAULT '',
			config BLOB NOT NULL
		);
	`)
	return err
}
