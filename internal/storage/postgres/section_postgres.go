package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type SectionPostgres struct {
	db *pgxpool.Pool
}

func NewSectionPostgres(db *pgxpool.Pool) *SectionPostgres {
	return &SectionPostgres{db: db}
}

const sectionColumns = `
    id, module_id, title, content_data, position, is_required,
    time_estimate_minutes, learning_style_tags, interactive_elements,
    key_points, created_at, updated_at`

func scanSection(row pgx.Row) (models.ContentSection, error) {
	var s models.ContentSection
	var contentRaw []byte
	var tags []string
	err := row.Scan(
		&s.ID, &s.ModuleID, &s.Title, &contentRaw, &s.Position, &s.IsRequired,
		&s.TimeEstimateMinutes, &tags, &s.InteractiveElements,
		&s.KeyPoints, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return models.ContentSection{}, err
	}
	s.LearningStyleTags = stringsToStyles(tags)
	if len(contentRaw) > 0 {
		// a content payload that no longer decodes is degraded, not fatal
		_ = json.Unmarshal(contentRaw, &s.Content)
	}
	return s, nil
}

func sectionsByModule(ctx context.Context, db querier, moduleID uuid.UUID) ([]models.ContentSection, error) {
	query := `SELECT` + sectionColumns + `
      FROM sections
     WHERE module_id = $1
     ORDER BY position
    `
	rows, err := db.Query(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []models.ContentSection
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *SectionPostgres) SectionsByModule(ctx context.Context, moduleID uuid.UUID) ([]models.ContentSection, error) {
	return sectionsByModule(ctx, r.db, moduleID)
}

func (r *SectionPostgres) SectionByID(ctx context.Context, id uuid.UUID) (models.ContentSection, error) {
	query := `SELECT` + sectionColumns + `
      FROM sections
     WHERE id = $1
    `
	s, err := scanSection(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ContentSection{}, app_errors.ErrSectionNotFound
		}
		return models.ContentSection{}, fmt.Errorf("section not found: %w", err)
	}
	return s, nil
}

func (r *SectionPostgres) MaxPosition(ctx context.Context, moduleID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(position), 0) FROM sections WHERE module_id = $1`
	if err := r.db.QueryRow(ctx, query, moduleID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to get max section position: %w", err)
	}
	return max, nil
}

func (r *SectionPostgres) CreateSection(ctx context.Context, section models.ContentSection) (*models.ContentSection, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	shiftQuery := `
        UPDATE sections SET position = position + 1
         WHERE module_id = $1 AND position >= $2
    `
	if _, err = tx.Exec(ctx, shiftQuery, section.ModuleID, section.Position); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}
	section.CreatedAt = now
	section.UpdatedAt = now

	contentRaw, err := json.Marshal(section.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content_data: %w", err)
	}

	insertQuery := `
    INSERT INTO sections (
        id, module_id, title, content_data, position, is_required,
        time_estimate_minutes, learning_style_tags, interactive_elements,
        key_points, created_at, updated_at
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err = tx.Exec(ctx, insertQuery,
		section.ID, section.ModuleID, section.Title, contentRaw, section.Position,
		section.IsRequired, section.TimeEstimateMinutes,
		stylesToStrings(section.LearningStyleTags), section.InteractiveElements,
		section.KeyPoints, section.CreatedAt, section.UpdatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == uniqueViolationCode {
			return nil, app_errors.ErrDuplicatePosition
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *SectionPostgres) UpdateSection(ctx context.Context, section models.ContentSection) (*models.ContentSection, error) {
	contentRaw, err := json.Marshal(section.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content_data: %w", err)
	}
	section.UpdatedAt = time.Now().UTC()

	query := `
    UPDATE sections
       SET title = $1, content_data = $2, is_required = $3,
           time_estimate_minutes = $4, learning_style_tags = $5,
           interactive_elements = $6, key_points = $7, updated_at = $8
     WHERE id = $9
    `
	tag, err := r.db.Exec(ctx, query,
		section.Title, contentRaw, section.IsRequired, section.TimeEstimateMinutes,
		stylesToStrings(section.LearningStyleTags), section.InteractiveElements,
		section.KeyPoints, section.UpdatedAt, section.ID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, app_errors.ErrSectionNotFound
	}
	return &section, nil
}

// DeleteSectionAndUpdateOrder removes the section and closes the gap so
// positions stay contiguous within the module.
func (r *SectionPostgres) DeleteSectionAndUpdateOrder(ctx context.Context, sectionID, moduleID uuid.UUID, position int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM sections WHERE id = $1`, sectionID); err != nil {
		return err
	}

	shiftQuery := `
        UPDATE sections SET position = position - 1
         WHERE module_id = $1 AND position > $2
    `
	if _, err = tx.Exec(ctx, shiftQuery, moduleID, position); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *SectionPostgres) SwapSections(ctx context.Context, sectionID1, sectionID2 uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var pos1, pos2 int
	query := `SELECT position FROM sections WHERE id = $1`
	if err := tx.QueryRow(ctx, query, sectionID1).Scan(&pos1); err != nil {
		return fmt.Errorf("failed to get position for section1: %w", err)
	}
	if err := tx.QueryRow(ctx, query, sectionID2).Scan(&pos2); err != nil {
		return fmt.Errorf("failed to get position for section2: %w", err)
	}

	updateQuery := `UPDATE sections SET position = $1 WHERE id = $2`
	tempPos := -1
	if _, err := tx.Exec(ctx, updateQuery, tempPos, sectionID1); err != nil {
		return fmt.Errorf("failed to move section1 to temp position: %w", err)
	}
	if _, err := tx.Exec(ctx, updateQuery, pos1, sectionID2); err != nil {
		return fmt.Errorf("failed to update section2 position: %w", err)
	}
	if _, err := tx.Exec(ctx, updateQuery, pos2, sectionID1); err != nil {
		return fmt.Errorf("failed to update section1 position: %w", err)
	}

	return tx.Commit(ctx)
}
