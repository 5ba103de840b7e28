package class

import (
	"context"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/google/uuid"
)

type classRepo interface {
	CreateClass(ctx context.Context, class *models.Class) (uuid.UUID, error)
	ClassByID(ctx context.Context, id uuid.UUID) (*models.Class, error)
	ClassesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Class, error)
	ClassesByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Class, error)
	Enroll(ctx context.Context, classID, studentID uuid.UUID) error
}

type ClassService struct {
	log     logger.Log
	classes classRepo
}

func NewClassService(l logger.Log, classes classRepo) *ClassService {
	return &ClassService{log: l, classes: classes}
}

func (s *ClassService) CreateClass(ctx context.Context, teacherID uuid.UUID, class models.Class) (*models.Class, error) {
	class.TeacherID = teacherID
	id, err := s.classes.CreateClass(ctx, &class)
	if err != nil {
		return nil, err
	}
	s.log.Info("class created", "class_id", id, "teacher_id", teacherID)
	return &class, nil
}

func (s *ClassService) Class(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	return s.classes.ClassByID(ctx, id)
}

func (s *ClassService) TeacherClasses(ctx context.Context, teacherID uuid.UUID) ([]models.Class, error) {
	return s.classes.ClassesByTeacher(ctx, teacherID)
}

func (s *ClassService) StudentClasses(ctx context.Context, studentID uuid.UUID) ([]models.Class, error) {
	return s.classes.ClassesByStudent(ctx, studentID)
}

func (s *ClassService) Enroll(ctx context.Context, classID, studentID uuid.UUID) error {
	if _, err := s.classes.ClassByID(ctx, classID); err != nil {
		return err
	}
	return s.classes.Enroll(ctx, classID, studentID)
}
