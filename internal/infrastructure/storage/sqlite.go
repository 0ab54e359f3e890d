// Package storage persists bill snapshots: the single editable draft and
// the completed-bill history.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
)

// Storage provides SQLite-backed persistence. It implements Repository.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository.
var _ Repository = (*Storage)(nil)

// NewStorage opens (creating if needed) the SQLite database at dbPath and
// runs pending migrations.
func NewStorage(dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveDraft stores or replaces the current draft.
func (s *Storage) SaveDraft(draft *Draft) error {
	snapshotJSON, err := json.Marshal(draft.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal draft snapshot: %w", err)
	}

	_, err = s.db.Exec(`
	INSERT INTO draft (id, snapshot_json, saved_at) VALUES (1, ?, ?)
	ON CONFLICT(id) DO UPDATE SET snapshot_json = excluded.snapshot_json, saved_at = excluded.saved_at`,
		string(snapshotJSON), draft.SavedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// GetDraft returns the stored draft, or nil when none exists.
func (s *Storage) GetDraft() (*Draft, error) {
	var snapshotJSON, savedAt string
	err := s.db.QueryRow("SELECT snapshot_json, saved_at FROM draft WHERE id = 1").
		Scan(&snapshotJSON, &savedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	draft := &Draft{}
	if err := json.Unmarshal([]byte(snapshotJSON), &draft.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft snapshot: %w", err)
	}
	draft.SavedAt, err = time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse draft saved_at: %w", err)
	}
	return draft, nil
}

// ClearDraft removes the stored draft.
func (s *Storage) ClearDraft() error {
	if _, err := s.db.Exec("DELETE FROM draft WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// SaveCompletedBill inserts a finalized bill into history.
func (s *Storage) SaveCompletedBill(bill *CompletedBill) error {
	snapshotJSON, err := json.Marshal(bill.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal bill snapshot: %w", err)
	}

	_, err = s.db.Exec(`
	INSERT INTO completed_bills
	(id, title, people_count, item_count, grand_total, created_at, snapshot_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bill.ID,
		bill.Title,
		bill.PeopleCount,
		bill.ItemCount,
		bill.GrandTotal,
		bill.CreatedAt.UTC().Format(time.RFC3339),
		string(snapshotJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save completed bill: %w", err)
	}
	return nil
}

// ListCompletedBills returns history newest first. Snapshots are included
// so callers can reopen a bill without a second query.
func (s *Storage) ListCompletedBills(limit int) ([]*CompletedBill, error) {
	query := `
	SELECT id, title, people_count, item_count, grand_total, created_at, snapshot_json
	FROM completed_bills ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed bills: %w", err)
	}
	defer rows.Close()

	var bills []*CompletedBill
	for rows.Next() {
		bill, err := scanCompletedBill(rows.Scan)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// GetCompletedBill retrieves one bill by id, or nil when absent.
func (s *Storage) GetCompletedBill(id string) (*CompletedBill, error) {
	row := s.db.QueryRow(`
	SELECT id, title, people_count, item_count, grand_total, created_at, snapshot_json
	FROM completed_bills WHERE id = ?`, id)

	bill, err := scanCompletedBill(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return bill, err
}

// DeleteCompletedBill removes one bill from history.
func (s *Storage) DeleteCompletedBill(id string) error {
	if _, err := s.db.Exec("DELETE FROM completed_bills WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete completed bill: %w", err)
	}
	return nil
}

// ClearCompletedBills removes all history.
func (s *Storage) ClearCompletedBills() error {
	if _, err := s.db.Exec("DELETE FROM completed_bills"); err != nil {
		return fmt.Errorf("failed to clear completed bills: %w", err)
	}
	return nil
}

// PruneCompletedBills deletes the oldest bills beyond keep.
func (s *Storage) PruneCompletedBills(keep int) error {
	_, err := s.db.Exec(`
	DELETE FROM completed_bills WHERE id NOT IN (
		SELECT id FROM completed_bills ORDER BY created_at DESC, id DESC LIMIT ?
	)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune completed bills: %w", err)
	}
	return nil
}

func scanCompletedBill(scan func(dest ...any) error) (*CompletedBill, error) {
	bill := &CompletedBill{}
	var createdAt, snapshotJSON string
	err := scan(&bill.ID, &bill.Title, &bill.PeopleCount, &bill.ItemCount,
		&bill.GrandTotal, &createdAt, &snapshotJSON)
	if err != nil {
		return nil, err
	}

	bill.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bill created_at: %w", err)
	}

	var snap engine.Snapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bill snapshot: %w", err)
	}
	bill.Snapshot = snap
	return bill, nil
}
