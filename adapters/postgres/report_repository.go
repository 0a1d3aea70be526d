package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"reportlens/domain/core"
	"reportlens/internal/errors"
	"reportlens/models"
	"reportlens/ports"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// Schema is the recent-reports table DDL, applied at startup.
const Schema = `
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	score      INTEGER NOT NULL,
	safe_mode  BOOLEAN NOT NULL DEFAULT FALSE,
	bundle     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at DESC);`

// Migrate applies the reports schema.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return errors.Wrap(err, "failed to apply reports schema")
	}
	return nil
}

// Save inserts a stored report.
func (r *reportRepository) Save(ctx context.Context, report *models.StoredReport) error {
	query := `INSERT INTO reports (id, title, score, safe_mode, bundle, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.Title, report.Score, report.SafeMode, report.Bundle, report.CreatedAt,
	)
	if err != nil {
		return errors.WithCode(errors.CodeStorage, fmt.Errorf("failed to save report: %w", err))
	}
	return nil
}

// List returns the most recent reports, newest first.
func (r *reportRepository) List(ctx context.Context, limit int) ([]*models.StoredReport, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, title, score, safe_mode, bundle, created_at
		FROM reports ORDER BY created_at DESC LIMIT $1`

	var reports []*models.StoredReport
	if err := r.db.SelectContext(ctx, &reports, query, limit); err != nil {
		return nil, errors.WithCode(errors.CodeStorage, fmt.Errorf("failed to list reports: %w", err))
	}
	return reports, nil
}

// GetByID retrieves one stored report.
func (r *reportRepository) GetByID(ctx context.Context, id core.ReportID) (*models.StoredReport, error) {
	query := `SELECT id, title, score, safe_mode, bundle, created_at
		FROM reports WHERE id = $1`

	var report models.StoredReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("report %s not found", id))
		}
		return nil, errors.WithCode(errors.CodeStorage, fmt.Errorf("failed to get report: %w", err))
	}
	return &report, nil
}
