package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/engine"
)

const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    address TEXT NOT NULL,
    chain TEXT NOT NULL,
    intent TEXT NOT NULL,
    category TEXT NOT NULL,
    summary TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scans_addr ON scans(address);
CREATE INDEX IF NOT EXISTS idx_scans_time ON scans(created_at);
CREATE INDEX IF NOT EXISTS idx_scans_category ON scans(category);
`

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScan records a finished analysis for the history view.
func (s *Store) SaveScan(v *engine.Verdict) error {
	_, err := s.db.Exec(`
		INSERT INTO scans (address, chain, intent, category, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.Address, string(v.Chain), string(v.Intent), string(v.Category), v.Summary, v.AnalyzedAt)
	return err
}

func (s *Store) GetRecentScans(limit int) ([]Scan, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, address, chain, intent, category, summary, created_at
		FROM scans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var sc Scan
		if err := rows.Scan(&sc.ID, &sc.Address, &sc.Chain, &sc.Intent, &sc.Category, &sc.Summary, &sc.CreatedAt); err != nil {
			return nil, err
		}
		scans = append(scans, sc)
	}
	return scans, rows.Err()
}

func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ByCategory: make(map[string]int)}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM scans").Scan(&stats.TotalScans); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow(
		"SELECT COUNT(DISTINCT address) FROM scans WHERE intent = ?",
		string(engine.IntentWallet)).Scan(&stats.UniqueWallets); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT category, COUNT(*) FROM scans GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		stats.ByCategory[cat] = n
	}
	return stats, rows.Err()
}
