package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionPostgres struct {
	db *pgxpool.Pool
}

func NewQuestionPostgres(db *pgxpool.Pool) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

func questionsByModule(ctx context.Context, db querier, moduleID uuid.UUID) ([]models.AssessmentQuestion, error) {
	query := `
        SELECT id, module_id, question, type, options, correct_answer, points, position
          FROM assessment_questions
         WHERE module_id = $1
         ORDER BY position
    `
	rows, err := db.Query(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment questions: %w", err)
	}
	defer rows.Close()

	var questions []models.AssessmentQuestion
	for rows.Next() {
		var q models.AssessmentQuestion
		if err := rows.Scan(
			&q.ID, &q.ModuleID, &q.Question, &q.Type, &q.Options,
			&q.CorrectAnswer, &q.Points, &q.Position,
		); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionPostgres) QuestionsByModule(ctx context.Context, moduleID uuid.UUID) ([]models.AssessmentQuestion, error) {
	return questionsByModule(ctx, r.db, moduleID)
}

func (r *QuestionPostgres) QuestionByID(ctx context.Context, id uuid.UUID) (models.AssessmentQuestion, error) {
	query := `
        SELECT id, module_id, question, type, options, correct_answer, points, position
          FROM assessment_questions
         WHERE id = $1
    `
	var q models.AssessmentQuestion
	err := r.db.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.ModuleID, &q.Question, &q.Type, &q.Options,
		&q.CorrectAnswer, &q.Points, &q.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AssessmentQuestion{}, app_errors.ErrQuestionNotFound
		}
		return models.AssessmentQuestion{}, fmt.Errorf("question not found: %w", err)
	}
	return q, nil
}

func (r *QuestionPostgres) AddQuestion(ctx context.Context, question models.AssessmentQuestion) (*models.AssessmentQuestion, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var max int
	err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM assessment_questions WHERE module_id = $1`, question.ModuleID).Scan(&max)
	if err != nil {
		return nil, fmt.Errorf("failed to get max question position: %w", err)
	}
	question.Position = max + 1

	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}

	insertQuery := `
    INSERT INTO assessment_questions (
        id, module_id, question, type, options, correct_answer, points, position
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err = tx.Exec(ctx, insertQuery,
		question.ID, question.ModuleID, question.Question, question.Type,
		question.Options, question.CorrectAnswer, question.Points, question.Position,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionPostgres) DeleteQuestionAndUpdateOrder(ctx context.Context, questionID, moduleID uuid.UUID, position int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM assessment_questions WHERE id = $1`, questionID); err != nil {
		return err
	}

	shiftQuery := `
        UPDATE assessment_questions SET position = position - 1
         WHERE module_id = $1 AND position > $2
    `
	if _, err = tx.Exec(ctx, shiftQuery, moduleID, position); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
