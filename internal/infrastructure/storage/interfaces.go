package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing handlers with fakes straightforward.
type Repository interface {
	// SaveSession persists one analysis session, overwriting on id collision
	SaveSession(session *AnalysisSession) error

	// GetSession retrieves a session by id, including the full transaction
	// list and insight record. Returns ErrSessionNotFound for unknown ids.
	GetSession(id string) (*AnalysisSession, error)

	// ListSessions returns recent session summaries, newest first
	ListSessions(limit int) ([]SessionSummary, error)

	// DeleteSession removes a session. Returns ErrSessionNotFound when
	// nothing was deleted.
	DeleteSession(id string) error

	Close() error
}
