package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/casegen/internal/domain"
)

const casesTable = "synthetic_cases"

// caseColumns is the column order used for bulk copy.
var caseColumns = []string{
	"run_id", "dat", "site_name", "status", "priority", "severity", "screen_status",
	"state", "case_status", "type", "category", "reported_issue", "resolution",
	"queue_name", "region", "market", "creation_time", "last_update_time", "resolution_days",
}

// CaseRepository encapsulates generated case persistence.
type CaseRepository interface {
	InsertBatch(ctx context.Context, runID uuid.UUID, records []domain.CaseRecord) (int64, error)
	CountByRun(ctx context.Context, runID uuid.UUID) (int64, error)
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

func (r *caseRepository) InsertBatch(ctx context.Context, runID uuid.UUID, records []domain.CaseRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	id := pgtypeUUID(runID)
	copied, err := r.pool.CopyFrom(ctx, pgx.Identifier{casesTable}, caseColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return caseRow(id, records[i]), nil
		}))
	if err != nil {
		return copied, fmt.Errorf("copy %d cases: %w", len(records), err)
	}
	return copied, nil
}

func (r *caseRepository) CountByRun(ctx context.Context, runID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM synthetic_cases WHERE run_id = $1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, pgtypeUUID(runID)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func caseRow(runID pgtype.UUID, rec domain.CaseRecord) []any {
	return []any{
		runID,
		rec.ID,
		rec.SiteName,
		string(rec.Status),
		string(rec.Priority),
		rec.Severity,
		string(rec.ScreenStatus),
		rec.State,
		string(rec.CaseStatus),
		string(rec.Type),
		rec.Category,
		rec.ReportedIssue,
		rec.Resolution,
		rec.QueueName,
		string(rec.Region),
		rec.Market,
		rec.CreationTime,
		rec.LastUpdateTime,
		int32(rec.ResolutionTimeDays),
	}
}

func pgtypeUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
