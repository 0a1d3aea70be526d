package ports

import (
	"context"

	"reportlens/domain/core"
	"reportlens/domain/snapshot"
	"reportlens/models"
)

// ReportRepository persists assembled reports for the "recent reports" list.
type ReportRepository interface {
	Save(ctx context.Context, r *models.StoredReport) error
	List(ctx context.Context, limit int) ([]*models.StoredReport, error)
	GetByID(ctx context.Context, id core.ReportID) (*models.StoredReport, error)
}

// SnapshotSource produces snapshots from the external analysis backend.
type SnapshotSource interface {
	WaitForSnapshot(ctx context.Context, runID core.RunID) (*snapshot.Snapshot, error)
}
