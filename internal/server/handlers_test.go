package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A3V1/B2B-RFP/internal/pipeline"
	"github.com/A3V1/B2B-RFP/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(context.Background(), Config{Port: 0})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndGetDocument(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/documents", map[string]string{
		"filename": "tender.txt",
		"content":  "Supply  of LT cables",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var doc document
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Supply of LT cables", doc.Content, "content is cleaned on upload")

	w = doJSON(t, srv, http.MethodGet, "/documents/"+doc.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateDocumentValidation(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/documents", map[string]string{"filename": "tender.txt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDocumentNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/documents/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAnalysisFromContent(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/analyses", map[string]string{
		"content": "1. Scope of Work\nSupply of LT cables.",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var accepted map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&accepted))
	id := accepted["id"]
	require.NotEmpty(t, id)
	assert.Equal(t, "running", accepted["status"])

	// The run executes in the background; poll until it finishes.
	require.Eventually(t, func() bool {
		run, err := srv.store.Get(id)
		return err == nil && run.Status != types.StatusRunning
	}, 5*time.Second, 10*time.Millisecond)

	w = doJSON(t, srv, http.MethodGet, "/analyses/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var run pipeline.Run
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))
	require.NotNil(t, run.Result)
	// No model and no catalog configured, so the run completes with errors.
	assert.Equal(t, types.StatusCompletedWithErrors, run.Status)
}

func TestCreateAnalysisFromDocument(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/documents", map[string]string{
		"filename": "tender.txt",
		"content":  "1. Scope of Work\nSupply of LT cables.",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var doc document
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))

	w = doJSON(t, srv, http.MethodPost, "/analyses", map[string]string{"document_id": doc.ID})
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestCreateAnalysisRequiresExactlyOneInput(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/analyses", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/analyses", map[string]string{
		"document_id": "some-id",
		"content":     "inline text",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAnalysisUnknownDocument(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/analyses", map[string]string{"document_id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnalysis(t *testing.T) {
	srv := newTestServer(t)
	srv.store.Create("run-1")
	srv.store.Complete("run-1", types.RunResult{ID: "run-1", Status: types.StatusCompleted})

	w := doJSON(t, srv, http.MethodDelete, "/analyses/run-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/analyses/run-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAnalysisNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/analyses/%s", "missing"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
