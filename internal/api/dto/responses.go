package dto

import (
	"time"

	"github.com/spendlens/spendlens/internal/insight"
	"github.com/spendlens/spendlens/internal/normalize"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// AnalyzeResponse is returned after a successful pipeline run. It carries
// the canonical transactions and the derived insight record unchanged, plus
// the id of the stored session.
type AnalyzeResponse struct {
	SessionID    string                  `json:"session_id"`
	Source       string                  `json:"source"`
	Transactions []normalize.Transaction `json:"transactions"`
	Insights     *insight.Insights       `json:"insights"`
}

// SessionResponse represents a stored analysis session.
type SessionResponse struct {
	ID           string                  `json:"id"`
	CreatedAt    time.Time               `json:"created_at"`
	Source       string                  `json:"source"`
	Transactions []normalize.Transaction `json:"transactions"`
	Insights     *insight.Insights       `json:"insights"`
}

// SessionSummaryResponse is one row of the session listing.
type SessionSummaryResponse struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Source           string    `json:"source"`
	TransactionCount int       `json:"transaction_count"`
	TotalSpent       float64   `json:"total_spent"`
}

// SessionListResponse wraps the session listing.
type SessionListResponse struct {
	Sessions   []SessionSummaryResponse `json:"sessions"`
	TotalCount int                      `json:"total_count"`
}
