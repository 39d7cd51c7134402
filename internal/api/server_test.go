package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/api"
	"github.com/spendlens/spendlens/internal/api/dto"
	"github.com/spendlens/spendlens/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) *api.Server {
	t.Helper()

	repo, err := storage.NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewServer(api.DefaultConfig(), repo, logger)
}

func analyzeSession(t *testing.T, server *api.Server) dto.AnalyzeResponse {
	t.Helper()

	body, err := json.Marshal(dto.AnalyzeRequest{
		Source: "json",
		Rows: []map[string]any{
			{"date": "2024-01-01", "category": "Food", "amount": 120.0, "description": "Groceries"},
			{"date": "2024-02-01", "category": "Travel", "amount": 80.0, "description": "Train"},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response dto.AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return response
}

func TestServer_HealthRoute(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_AnalyzeThenFetchSession(t *testing.T) {
	server := newTestServer(t)
	created := analyzeSession(t, server)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var session dto.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&session))

	assert.Equal(t, created.SessionID, session.ID)
	assert.Equal(t, "json", session.Source)
	assert.Equal(t, created.Transactions, session.Transactions)
	assert.Equal(t, created.Insights, session.Insights)
}

func TestServer_SessionListing(t *testing.T) {
	server := newTestServer(t)
	analyzeSession(t, server)
	analyzeSession(t, server)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var listing dto.SessionListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listing))

	assert.Equal(t, 2, listing.TotalCount)
	require.Len(t, listing.Sessions, 2)
	assert.Equal(t, 200.0, listing.Sessions[0].TotalSpent)
}

func TestServer_SessionReport(t *testing.T) {
	server := newTestServer(t)
	created := analyzeSession(t, server)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.SessionID+"/report", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rec.Body.String(), "# Spending Insights")
}

func TestServer_SessionCharts(t *testing.T) {
	server := newTestServer(t)
	created := analyzeSession(t, server)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.SessionID+"/charts", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var charts dto.ChartsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&charts))

	assert.Equal(t, []string{"Food", "Travel"}, charts.Categories.Labels)
	require.NotNil(t, charts.Monthly)
	assert.Equal(t, []string{"2024-01", "2024-02"}, charts.Monthly.Labels)
}

func TestServer_DeleteSession(t *testing.T) {
	server := newTestServer(t)
	created := analyzeSession(t, server)

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+created.SessionID, nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	rec = httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_UnknownSession(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{
		"/api/sessions/unknown",
		"/api/sessions/unknown/report",
		"/api/sessions/unknown/charts",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
