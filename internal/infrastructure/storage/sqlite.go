package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for analysis sessions.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveSession persists one analysis session. The transaction list and the
// insight record are stored as JSON and must round-trip unchanged.
func (s *Storage) SaveSession(session *AnalysisSession) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	if session.TransactionCount == 0 {
		session.TransactionCount = len(session.Transactions)
	}

	transactionsJSON, err := json.Marshal(session.Transactions)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	insightsJSON, err := json.Marshal(session.Insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	totalSpent := 0.0
	if session.Insights != nil {
		totalSpent = session.Insights.TotalSpent
	}

	query := `
	INSERT OR REPLACE INTO analysis_sessions
	(id, created_at, source, transaction_count, transactions_json, insights_json, total_spent)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		session.ID,
		session.CreatedAt,
		session.Source,
		session.TransactionCount,
		string(transactionsJSON),
		string(insightsJSON),
		totalSpent,
	)

	return err
}

// GetSession retrieves a full session by id
func (s *Storage) GetSession(id string) (*AnalysisSession, error) {
	query := `
	SELECT id, created_at, source, transaction_count, transactions_json, insights_json
	FROM analysis_sessions WHERE id = ?
	`

	session := &AnalysisSession{}
	var transactionsJSON, insightsJSON string
	err := s.db.QueryRow(query, id).Scan(
		&session.ID,
		&session.CreatedAt,
		&session.Source,
		&session.TransactionCount,
		&transactionsJSON,
		&insightsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(transactionsJSON), &session.Transactions); err != nil {
		return nil, fmt.Errorf("unmarshal transactions for session %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(insightsJSON), &session.Insights); err != nil {
		return nil, fmt.Errorf("unmarshal insights for session %s: %w", id, err)
	}

	return session, nil
}

// ListSessions returns recent session summaries, newest first
func (s *Storage) ListSessions(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, created_at, source, transaction_count, total_spent
	FROM analysis_sessions
	ORDER BY created_at DESC
	LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var summaries []SessionSummary
	for rows.Next() {
		var summary SessionSummary
		err := rows.Scan(
			&summary.ID,
			&summary.CreatedAt,
			&summary.Source,
			&summary.TransactionCount,
			&summary.TotalSpent,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// DeleteSession removes a session by id
func (s *Storage) DeleteSession(id string) error {
	result, err := s.db.Exec(`DELETE FROM analysis_sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
