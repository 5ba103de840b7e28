package models

import (
	"time"

	"github.com/google/uuid"
)

type Class struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	GradeLevel string    `json:"grade_level"`
	TeacherID  uuid.UUID `json:"teacher_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Enrollment struct {
	ClassID   uuid.UUID `json:"class_id"`
	StudentID uuid.UUID `json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
}
