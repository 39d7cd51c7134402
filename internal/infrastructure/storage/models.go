package storage

import (
	"errors"
	"time"

	"github.com/spendlens/spendlens/internal/insight"
	"github.com/spendlens/spendlens/internal/normalize"
)

// ErrSessionNotFound is returned when a session id has no stored record.
var ErrSessionNotFound = errors.New("analysis session not found")

// Source names for where a session's rows came from.
const (
	SourceCSV    = "csv"
	SourceJSON   = "json"
	SourceManual = "manual"
)

// AnalysisSession is one completed pipeline run: the canonical transactions
// and the insight record derived from them, kept for the results view. Both
// payloads round-trip through JSON columns unchanged.
type AnalysisSession struct {
	ID               string                  `json:"id"`
	CreatedAt        time.Time               `json:"created_at"`
	Source           string                  `json:"source"`
	TransactionCount int                     `json:"transaction_count"`
	Transactions     []normalize.Transaction `json:"transactions"`
	Insights         *insight.Insights       `json:"insights"`
}

// SessionSummary is the listing row: everything but the payload blobs.
type SessionSummary struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Source           string    `json:"source"`
	TransactionCount int       `json:"transaction_count"`
	TotalSpent       float64   `json:"total_spent"`
}
