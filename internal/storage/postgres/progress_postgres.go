package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

// Upsert keeps one row per (module, student); a retake overwrites the
// previous attempt.
func (r *ProgressPostgres) Upsert(ctx context.Context, progress models.ModuleProgress) error {
	progress.UpdatedAt = time.Now().UTC()

	query := `
        INSERT INTO module_progress (module_id, student_id, score, status, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (module_id, student_id)
        DO UPDATE SET score = EXCLUDED.score, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
    `
	_, err := r.db.Exec(ctx, query,
		progress.ModuleID, progress.StudentID, progress.Score, progress.Status, progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert module progress: %w", err)
	}
	return nil
}

func (r *ProgressPostgres) Get(ctx context.Context, moduleID, studentID uuid.UUID) (*models.ModuleProgress, error) {
	query := `
        SELECT module_id, student_id, score, status, updated_at
          FROM module_progress
         WHERE module_id = $1 AND student_id = $2
    `
	var p models.ModuleProgress
	err := r.db.QueryRow(ctx, query, moduleID, studentID).Scan(
		&p.ModuleID, &p.StudentID, &p.Score, &p.Status, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
