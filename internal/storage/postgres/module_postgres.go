package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModulePostgres struct {
	db *pgxpool.Pool
}

func NewModulePostgres(db *pgxpool.Pool) *ModulePostgres {
	return &ModulePostgres{db: db}
}

func stylesToStrings(styles []models.LearningStyle) []string {
	out := make([]string, 0, len(styles))
	for _, s := range styles {
		out = append(out, string(s))
	}
	return out
}

func stringsToStyles(raw []string) []models.LearningStyle {
	out := make([]models.LearningStyle, 0, len(raw))
	for _, s := range raw {
		out = append(out, models.LearningStyle(s))
	}
	return out
}

func (r *ModulePostgres) CreateModule(ctx context.Context, module *models.Module) (uuid.UUID, error) {
	now := time.Now().UTC()
	if module.ID == uuid.Nil {
		module.ID = uuid.New()
	}
	module.CreatedAt = now
	module.UpdatedAt = now

	query := `
    INSERT INTO modules (
        id, title, description, learning_objectives, difficulty_level,
        estimated_duration_minutes, prerequisites, target_class_id,
        target_learning_styles, is_published, created_by, created_at, updated_at
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.db.Exec(ctx, query,
		module.ID, module.Title, module.Description, module.LearningObjectives,
		module.DifficultyLevel, module.EstimatedDurationMinutes, module.Prerequisites,
		module.TargetClassID, stylesToStrings(module.TargetLearningStyles),
		module.IsPublished, module.CreatedBy, module.CreatedAt, module.UpdatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert module: %w", err)
	}
	return module.ID, nil
}

// ModuleByID loads the full aggregate: the module row plus its sections and
// assessment questions in position order.
func (r *ModulePostgres) ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error) {
	query := `
    SELECT id, title, description, learning_objectives, difficulty_level,
           estimated_duration_minutes, prerequisites, target_class_id,
           target_learning_styles, is_published, created_by, created_at, updated_at
      FROM modules
     WHERE id = $1
    `
	var module models.Module
	var styles []string
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&module.ID, &module.Title, &module.Description, &module.LearningObjectives,
		&module.DifficultyLevel, &module.EstimatedDurationMinutes, &module.Prerequisites,
		&module.TargetClassID, &styles, &module.IsPublished, &module.CreatedBy,
		&module.CreatedAt, &module.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to load module: %w", err)
	}
	module.TargetLearningStyles = stringsToStyles(styles)

	sections, err := sectionsByModule(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	module.Sections = sections

	questions, err := questionsByModule(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	module.AssessmentQuestions = questions

	return &module, nil
}

func (r *ModulePostgres) UpdateModule(ctx context.Context, module *models.Module) error {
	query := `
    UPDATE modules
       SET title = $1, description = $2, learning_objectives = $3,
           difficulty_level = $4, estimated_duration_minutes = $5,
           prerequisites = $6, target_class_id = $7, target_learning_styles = $8,
           updated_at = $9
     WHERE id = $10
    `
	tag, err := r.db.Exec(ctx, query,
		module.Title, module.Description, module.LearningObjectives,
		module.DifficultyLevel, module.EstimatedDurationMinutes, module.Prerequisites,
		module.TargetClassID, stylesToStrings(module.TargetLearningStyles),
		time.Now().UTC(), module.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrModuleNotFound
	}
	return nil
}

func (r *ModulePostgres) DeleteModule(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, query := range []string{
		`DELETE FROM module_progress WHERE module_id = $1`,
		`DELETE FROM assessment_questions WHERE module_id = $1`,
		`DELETE FROM sections WHERE module_id = $1`,
		`DELETE FROM modules WHERE id = $1`,
	} {
		if _, err = tx.Exec(ctx, query, id); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ModulePostgres) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `UPDATE modules SET is_published = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, published, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to change publish state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrModuleNotFound
	}
	return nil
}

func (r *ModulePostgres) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Module, error) {
	query := `
    SELECT id, title, description, learning_objectives, difficulty_level,
           estimated_duration_minutes, prerequisites, target_class_id,
           target_learning_styles, is_published, created_by, created_at, updated_at
      FROM modules
     WHERE created_by = $1
     ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules by teacher: %w", err)
	}
	defer rows.Close()

	return scanModules(rows)
}

func (r *ModulePostgres) ListPublishedForClass(ctx context.Context, classID uuid.UUID) ([]models.Module, error) {
	query := `
    SELECT id, title, description, learning_objectives, difficulty_level,
           estimated_duration_minutes, prerequisites, target_class_id,
           target_learning_styles, is_published, created_by, created_at, updated_at
      FROM modules
     WHERE target_class_id = $1 AND is_published = true
     ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to query published modules: %w", err)
	}
	defer rows.Close()

	return scanModules(rows)
}

func scanModules(rows pgx.Rows) ([]models.Module, error) {
	var modules []models.Module
	for rows.Next() {
		var m models.Module
		var styles []string
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.LearningObjectives,
			&m.DifficultyLevel, &m.EstimatedDurationMinutes, &m.Prerequisites,
			&m.TargetClassID, &styles, &m.IsPublished, &m.CreatedBy,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.TargetLearningStyles = stringsToStyles(styles)
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *ModulePostgres) SectionCount(ctx context.Context, moduleID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sections WHERE module_id = $1`, moduleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return count, nil
}
