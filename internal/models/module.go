package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

type AssessmentQuestion struct {
	ID            uuid.UUID    `json:"id"`
	ModuleID      uuid.UUID    `json:"module_id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Points        int          `json:"points"`
	Position      int          `json:"position"`
}

// Module is the aggregate root of a lesson: ordered sections, objectives,
// assessment questions and targeting metadata. Published modules become
// readable by students enrolled in the target class.
type Module struct {
	ID                       uuid.UUID            `json:"id"`
	Title                    string               `json:"title"`
	Description              string               `json:"description"`
	LearningObjectives       []string             `json:"learning_objectives"`
	Sections                 []ContentSection     `json:"sections"`
	DifficultyLevel          string               `json:"difficulty_level"`
	EstimatedDurationMinutes int                  `json:"estimated_duration_minutes"`
	Prerequisites            []string             `json:"prerequisites"`
	AssessmentQuestions      []AssessmentQuestion `json:"assessment_questions"`
	TargetClassID            uuid.UUID            `json:"target_class_id"`
	TargetLearningStyles     []LearningStyle      `json:"target_learning_styles"`
	IsPublished              bool                 `json:"is_published"`
	CreatedBy                uuid.UUID            `json:"created_by"`
	CreatedAt                time.Time            `json:"created_at"`
	UpdatedAt                time.Time            `json:"updated_at"`
}

// SectionMinutes sums the section time estimates. It is advisory only:
// EstimatedDurationMinutes stays author-set and is never reconciled with it.
func (m *Module) SectionMinutes() int {
	total := 0
	for _, s := range m.Sections {
		total += s.TimeEstimateMinutes
	}
	return total
}

type ModulePreview struct {
	ID                       uuid.UUID       `json:"id"`
	Title                    string          `json:"title"`
	Description              string          `json:"description"`
	TeacherName              string          `json:"teacher_name"`
	DifficultyLevel          string          `json:"difficulty_level"`
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`
	TargetLearningStyles     []LearningStyle `json:"target_learning_styles"`
	SectionCount             int             `json:"section_count"`
	IsPublished              bool            `json:"is_published"`
}
