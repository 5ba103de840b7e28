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

type ClassPostgres struct {
	db *pgxpool.Pool
}

func NewClassPostgres(db *pgxpool.Pool) *ClassPostgres {
	return &ClassPostgres{db: db}
}

func (r *ClassPostgres) CreateClass(ctx context.Context, class *models.Class) (uuid.UUID, error) {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	class.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO classes (id, name, grade_level, teacher_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query, class.ID, class.Name, class.GradeLevel, class.TeacherID, class.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert class: %w", err)
	}
	return class.ID, nil
}

func (r *ClassPostgres) ClassByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	query := `SELECT id, name, grade_level, teacher_id, created_at FROM classes WHERE id = $1`

	var class models.Class
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID, &class.Name, &class.GradeLevel, &class.TeacherID, &class.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *ClassPostgres) ClassesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Class, error) {
	query := `
        SELECT id, name, grade_level, teacher_id, created_at
          FROM classes
         WHERE teacher_id = $1
         ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.GradeLevel, &c.TeacherID, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassPostgres) ClassesByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Class, error) {
	query := `
        SELECT c.id, c.name, c.grade_level, c.teacher_id, c.created_at
          FROM classes c
          JOIN enrollments e ON e.class_id = c.id
         WHERE e.student_id = $1
         ORDER BY c.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled classes: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.GradeLevel, &c.TeacherID, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassPostgres) Enroll(ctx context.Context, classID, studentID uuid.UUID) error {
	query := `INSERT INTO enrollments (class_id, student_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, classID, studentID, time.Now().UTC())
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == uniqueViolationCode {
			return app_errors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to enroll student: %w", err)
	}
	return nil
}

func (r *ClassPostgres) IsEnrolled(ctx context.Context, classID, studentID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE class_id = $1 AND student_id = $2)`
	var enrolled bool
	if err := r.db.QueryRow(ctx, query, classID, studentID).Scan(&enrolled); err != nil {
		return false, err
	}
	return enrolled, nil
}
