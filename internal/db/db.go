// Package db provides PostgreSQL access for the component catalog and for
// document and analysis persistence.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS components (
			id BIGSERIAL PRIMARY KEY,
			sku TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			voltage_kv DOUBLE PRECISION,
			conductor TEXT,
			cores TEXT,
			cross_section_mm2 DOUBLE PRECISION,
			insulation TEXT,
			armour TEXT,
			standard TEXT,
			fire_rating TEXT,
			application TEXT,
			price_per_meter DOUBLE PRECISION NOT NULL DEFAULT 0,
			in_stock BOOLEAN NOT NULL DEFAULT FALSE,
			lead_time_days INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY,
			filename TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			document_id UUID REFERENCES documents(id) ON DELETE SET NULL,
			status TEXT NOT NULL,
			result JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		);`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Document is a stored RFP document record
type Document struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateDocument stores an uploaded document and returns its ID
func (db *DB) CreateDocument(ctx context.Context, filename, content string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO documents (id, filename, content) VALUES ($1, $2, $3)`,
		id, filename, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document: %w", err)
	}
	return id, nil
}

// GetDocument retrieves a document by ID, or nil when it does not exist
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, filename, content, created_at FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.Filename, &doc.Content, &doc.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// CreateAnalysis registers an analysis run in the running state. A nil
// documentID stores NULL for ad-hoc content runs.
func (db *DB) CreateAnalysis(ctx context.Context, id uuid.UUID, documentID *uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO analyses (id, document_id, status) VALUES ($1, $2, $3)`,
		id, documentID, types.StatusRunning,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// CompleteAnalysis stores the finished result as JSONB
func (db *DB) CompleteAnalysis(ctx context.Context, id uuid.UUID, result types.RunResult) error {
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE analyses SET status = $1, result = $2, completed_at = NOW() WHERE id = $3`,
		result.Status, jsonBytes, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves a stored analysis result by ID. It returns the run
// status and, once completed, the result.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (string, *types.RunResult, error) {
	var status string
	var resultBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT status, result FROM analyses WHERE id = $1`,
		id,
	).Scan(&status, &resultBytes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if len(resultBytes) == 0 {
		return status, nil, nil
	}
	var result types.RunResult
	if err := json.Unmarshal(resultBytes, &result); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return status, &result, nil
}

// DeleteAnalysis deletes an analysis record
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

// InsertComponent upserts one catalog entry keyed by SKU
func (db *DB) InsertComponent(ctx context.Context, c types.ComponentCandidate) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO components (sku, name, category, voltage_kv, conductor, cores,
			cross_section_mm2, insulation, armour, standard, fire_rating, application,
			price_per_meter, in_stock, lead_time_days)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name, category = EXCLUDED.category,
			voltage_kv = EXCLUDED.voltage_kv, conductor = EXCLUDED.conductor,
			cores = EXCLUDED.cores, cross_section_mm2 = EXCLUDED.cross_section_mm2,
			insulation = EXCLUDED.insulation, armour = EXCLUDED.armour,
			standard = EXCLUDED.standard, fire_rating = EXCLUDED.fire_rating,
			application = EXCLUDED.application, price_per_meter = EXCLUDED.price_per_meter,
			in_stock = EXCLUDED.in_stock, lead_time_days = EXCLUDED.lead_time_days`,
		c.SKU, c.Name, c.Category, c.VoltageKV, c.Conductor, c.Cores,
		c.CrossSectionMM2, c.Insulation, c.Armour, c.Standard, c.FireRating, c.Application,
		c.PricePerMeter, c.InStock, c.LeadTimeDays,
	)
	if err != nil {
		return fmt.Errorf("failed to insert component %s: %w", c.SKU, err)
	}
	return nil
}
