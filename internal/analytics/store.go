// Package analytics keeps a privacy-conscious record of site activity:
// page visits, project tile selections and contact form outcomes. Client IPs
// are salted and hashed before they are stored; message bodies never are.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = time.DateTime

type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (or creates) the SQLite database at path and migrates it.
// Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serialises writes.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, salt: randomHex(32), now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`,
		`CREATE TABLE IF NOT EXISTS selections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			project_id TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_selections_project ON selections(project_id)`,
		`CREATE TABLE IF NOT EXISTS contact_submissions (
			id TEXT PRIMARY KEY,
			hashed_ip TEXT NOT NULL,
			provider TEXT NOT NULL,
			outcome TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate analytics db: %w", err)
		}
	}
	return nil
}

// HashIP hashes ip with the per-process salt. The result is stable for the
// life of the process, which is enough to count unique visitors.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(timeLayout)
}

func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.stamp())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordSelection(ctx context.Context, ip, projectID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO selections (hashed_ip, project_id, timestamp) VALUES (?, ?, ?)`,
		s.HashIP(ip), projectID, s.stamp())
	if err != nil {
		return fmt.Errorf("record selection: %w", err)
	}
	return nil
}

func (s *Store) RecordContact(ctx context.Context, ip, submissionID, provider, outcome string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (id, hashed_ip, provider, outcome, timestamp) VALUES (?, ?, ?, ?, ?)`,
		submissionID, s.HashIP(ip), provider, outcome, s.stamp())
	if err != nil {
		return fmt.Errorf("record contact: %w", err)
	}
	return nil
}

// Cleanup deletes rows older than the given number of months.
func (s *Store) Cleanup(ctx context.Context, months int) (int64, error) {
	cutoff := s.now().UTC().AddDate(0, -months, 0).Format(timeLayout)

	var total int64
	for _, table := range []string{"visitors", "selections", "contact_submissions"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("analytics: read random salt: %v", err))
	}
	return hex.EncodeToString(b)
}
