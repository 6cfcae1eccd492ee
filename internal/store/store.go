// Package store provides SQLite persistence for the news history.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store holds the capped news history. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Row is one persisted news item.
type Row struct {
	Title       string
	Body        string
	Link        string
	PublishTime string
	CreatedAt   time.Time
}

// Open creates a Store at the given database path, creating tables as
// needed. Uses WAL mode for file-based databases.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS news (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		body TEXT,
		link TEXT UNIQUE,
		publish_time TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_news_publish ON news(publish_time DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRows inserts rows, skipping link duplicates via INSERT OR IGNORE, and
// returns the count of newly inserted rows.
func (s *Store) SaveRows(rows []Row) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rows) == 0 {
		return 0, nil
	}

	stmt, err := s.db.Prepare(`
		INSERT OR IGNORE INTO news (title, body, link, publish_time, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	newCount := 0
	for _, r := range rows {
		// NULL rather than "" for a missing link: NULLs never collide
		// under the UNIQUE constraint, so linkless items all survive.
		link := any(r.Link)
		if r.Link == "" {
			link = nil
		}
		result, err := stmt.Exec(r.Title, r.Body, link, r.PublishTime, r.CreatedAt)
		if err != nil {
			return newCount, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
		}
	}
	return newCount, nil
}

// Prune keeps only the newest max rows by publish time, dropping the rest.
func (s *Store) Prune(max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		DELETE FROM news
		WHERE id NOT IN (
			SELECT id FROM news
			ORDER BY publish_time DESC
			LIMIT ?
		)
	`, max)
	return err
}

// Recent returns up to limit rows ordered by publish time descending.
func (s *Store) Recent(limit int) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRows(`
		SELECT title, body, link, publish_time, created_at
		FROM news
		ORDER BY publish_time DESC
		LIMIT ?
	`, limit)
}

// Search returns up to limit rows whose title or body contains keyword,
// ordered by publish time descending.
func (s *Store) Search(keyword string, limit int) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kw := "%" + keyword + "%"
	return s.queryRows(`
		SELECT title, body, link, publish_time, created_at
		FROM news
		WHERE title LIKE ? OR body LIKE ?
		ORDER BY publish_time DESC
		LIMIT ?
	`, kw, kw, limit)
}

// Count returns the number of persisted rows.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM news").Scan(&n)
	return n, err
}

// queryRows executes a query and scans results. Caller must hold s.mu.
func (s *Store) queryRows(query string, args ...any) ([]Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var link sql.NullString
		if err := rows.Scan(&r.Title, &r.Body, &link, &r.PublishTime, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Link = link.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
