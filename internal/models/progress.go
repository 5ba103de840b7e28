package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgressStatusPassed = "passed"
	ProgressStatusFailed = "failed"
)

type AssessmentAnswer struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
}

type ModuleProgress struct {
	ModuleID  uuid.UUID `json:"module_id"`
	StudentID uuid.UUID `json:"student_id"`
	Score     float64   `json:"score"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
