package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/A3V1/B2B-RFP/internal/ingestion"
	"github.com/A3V1/B2B-RFP/internal/pipeline"
)

// document is the in-memory document record used without a database.
type document struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// createDocumentRequest is the body for POST /documents.
type createDocumentRequest struct {
	Filename string `json:"filename" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// createAnalysisRequest is the body for POST /analyses. Exactly one of
// document_id and content must be provided.
type createAnalysisRequest struct {
	DocumentID string `json:"document_id,omitempty"`
	Content    string `json:"content,omitempty"`
}

// handleCreateDocument stores an RFP document and returns its ID.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	content := ingestion.CleanText(req.Content)

	if s.db != nil {
		id, err := s.db.CreateDocument(r.Context(), req.Filename, content)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.jsonResponse(w, http.StatusCreated, document{ID: id.String(), Filename: req.Filename, Content: content})
		return
	}

	doc := document{ID: uuid.New().String(), Filename: req.Filename, Content: content}
	s.docsMu.Lock()
	s.docs[doc.ID] = doc
	s.docsMu.Unlock()

	s.jsonResponse(w, http.StatusCreated, doc)
}

// handleGetDocument retrieves a stored document by ID.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if s.db != nil {
		docID, err := uuid.Parse(id)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid document ID")
			return
		}
		doc, err := s.db.GetDocument(r.Context(), docID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		if doc == nil {
			s.errorResponse(w, http.StatusNotFound, "document not found")
			return
		}
		s.jsonResponse(w, http.StatusOK, doc)
		return
	}

	s.docsMu.RLock()
	doc, ok := s.docs[id]
	s.docsMu.RUnlock()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "document not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleCreateAnalysis starts an analysis run in the background and returns
// 202 with the run ID.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if (req.DocumentID == "") == (req.Content == "") {
		s.errorResponse(w, http.StatusBadRequest, "provide exactly one of document_id or content")
		return
	}

	content := req.Content
	var documentID *uuid.UUID
	if req.DocumentID != "" {
		doc, docID, err := s.lookupDocument(r.Context(), req.DocumentID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if doc == "" {
			s.errorResponse(w, http.StatusNotFound, "document not found")
			return
		}
		content = doc
		if docID != uuid.Nil {
			documentID = &docID
		}
	}

	runID := uuid.New()
	s.store.Create(runID.String())
	if s.db != nil {
		if err := s.db.CreateAnalysis(r.Context(), runID, documentID); err != nil {
			log.Printf("failed to persist analysis %s: %v", runID, err)
		}
	}

	go s.runAnalysis(runID, content)

	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"id":     runID.String(),
		"status": "running",
	})
}

// runAnalysis executes the pipeline outside the request lifecycle.
func (s *Server) runAnalysis(runID uuid.UUID, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	rec := s.orchestrator.Run(ctx, runID.String(), content)
	result := pipeline.BuildResult(rec)
	s.store.Complete(runID.String(), result)

	if s.db != nil {
		if err := s.db.CompleteAnalysis(ctx, runID, result); err != nil {
			log.Printf("failed to persist analysis result %s: %v", runID, err)
		}
	}
}

// handleGetAnalysis returns the status and, once finished, the result.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	run, err := s.store.Get(id)
	if err == nil {
		s.jsonResponse(w, http.StatusOK, run)
		return
	}

	// Fall back to the database for runs from earlier processes.
	if s.db != nil {
		runID, parseErr := uuid.Parse(id)
		if parseErr != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid analysis ID")
			return
		}
		status, result, dbErr := s.db.GetAnalysis(r.Context(), runID)
		if dbErr != nil {
			s.errorResponse(w, http.StatusInternalServerError, dbErr.Error())
			return
		}
		if status != "" {
			s.jsonResponse(w, http.StatusOK, pipeline.Run{ID: id, Status: status, Result: result})
			return
		}
	}

	s.errorResponse(w, http.StatusNotFound, "analysis not found")
}

// handleDeleteAnalysis removes a run from the store and the database.
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	storeErr := s.store.Delete(id)

	if s.db != nil {
		if runID, err := uuid.Parse(id); err == nil {
			if err := s.db.DeleteAnalysis(r.Context(), runID); err == nil {
				storeErr = nil
			}
		}
	}

	if storeErr != nil {
		s.errorResponse(w, http.StatusNotFound, "analysis not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookupDocument fetches the content behind a document ID from whichever
// store is active.
func (s *Server) lookupDocument(ctx context.Context, id string) (string, uuid.UUID, error) {
	if s.db != nil {
		docID, err := uuid.Parse(id)
		if err != nil {
			return "", uuid.Nil, err
		}
		doc, err := s.db.GetDocument(ctx, docID)
		if err != nil {
			return "", uuid.Nil, err
		}
		if doc == nil {
			return "", uuid.Nil, nil
		}
		return doc.Content, doc.ID, nil
	}

	s.docsMu.RLock()
	doc, ok := s.docs[id]
	s.docsMu.RUnlock()
	if !ok {
		return "", uuid.Nil, nil
	}
	return doc.Content, uuid.Nil, nil
}
