package progress

import (
	"context"
	"strings"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/google/uuid"
)

const passThreshold = 60.0

type moduleRepo interface {
	ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error)
}

type classRepo interface {
	IsEnrolled(ctx context.Context, classID, studentID uuid.UUID) (bool, error)
}

type progressRepo interface {
	Upsert(ctx context.Context, progress models.ModuleProgress) error
	Get(ctx context.Context, moduleID, studentID uuid.UUID) (*models.ModuleProgress, error)
}

type ProgressService struct {
	log      logger.Log
	modules  moduleRepo
	classes  classRepo
	progress progressRepo
}

func NewProgressService(l logger.Log, modules moduleRepo, classes classRepo, progress progressRepo) *ProgressService {
	return &ProgressService{
		log:      l,
		modules:  modules,
		classes:  classes,
		progress: progress,
	}
}

// SubmitAnswers grades a full attempt against the module's assessment and
// records the result. A retake replaces the previous attempt.
func (s *ProgressService) SubmitAnswers(ctx context.Context, studentID, moduleID uuid.UUID, answers []models.AssessmentAnswer) (*models.ModuleProgress, error) {
	module, err := s.modules.ModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if !module.IsPublished {
		return nil, app_errors.ErrModuleNotPublished
	}
	if module.TargetClassID != uuid.Nil {
		enrolled, err := s.classes.IsEnrolled(ctx, module.TargetClassID, studentID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, app_errors.ErrNotEnrolled
		}
	}
	if len(module.AssessmentQuestions) == 0 {
		return nil, app_errors.ErrNoAssessment
	}

	score := grade(module.AssessmentQuestions, answers)
	status := models.ProgressStatusFailed
	if score >= passThreshold {
		status = models.ProgressStatusPassed
	}

	result := models.ModuleProgress{
		ModuleID:  moduleID,
		StudentID: studentID,
		Score:     score,
		Status:    status,
	}
	if err := s.progress.Upsert(ctx, result); err != nil {
		return nil, err
	}

	s.log.Info("assessment graded", "module_id", moduleID, "student_id", studentID, "score", score, "status", status)
	return &result, nil
}

// grade computes the points-weighted percentage of correct answers. Answers
// are matched case-insensitively after trimming; an unanswered question
// earns nothing.
func grade(questions []models.AssessmentQuestion, answers []models.AssessmentAnswer) float64 {
	byQuestion := make(map[uuid.UUID]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}

	total, earned := 0, 0
	for _, q := range questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		total += points
		if answerMatches(byQuestion[q.ID], q.CorrectAnswer) {
			earned += points
		}
	}
	if total == 0 {
		return 0
	}
	return float64(earned) / float64(total) * 100
}

func answerMatches(given, correct string) bool {
	given = strings.TrimSpace(strings.ToLower(given))
	correct = strings.TrimSpace(strings.ToLower(correct))
	return given != "" && given == correct
}

// Result returns the latest recorded attempt, or nil when the student has
// not attempted the module yet.
func (s *ProgressService) Result(ctx context.Context, studentID, moduleID uuid.UUID) (*models.ModuleProgress, error) {
	return s.progress.Get(ctx, moduleID, studentID)
}
