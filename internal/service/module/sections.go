package module

import (
	"context"
	"strings"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/google/uuid"
)

// AppendSection adds a blank text section at the end of the module.
func (s *ModuleService) AppendSection(ctx context.Context, teacherID, moduleID uuid.UUID, title string) (*models.ContentSection, error) {
	if strings.TrimSpace(title) == "" {
		return nil, app_errors.ErrEmptySectionTitle
	}
	if _, err := s.ownedModule(ctx, teacherID, moduleID); err != nil {
		return nil, err
	}

	max, err := s.sections.MaxPosition(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	section := models.NewSection(moduleID, title)
	section.Position = max + 1
	return s.sections.CreateSection(ctx, section)
}

// InsertSection places a blank text section at the given position; sections
// at or after it shift down by one.
func (s *ModuleService) InsertSection(ctx context.Context, teacherID, moduleID uuid.UUID, title string, position int) (*models.ContentSection, error) {
	if strings.TrimSpace(title) == "" {
		return nil, app_errors.ErrEmptySectionTitle
	}
	if _, err := s.ownedModule(ctx, teacherID, moduleID); err != nil {
		return nil, err
	}

	max, err := s.sections.MaxPosition(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if position < 1 || position > max+1 {
		position = max + 1
	}

	section := models.NewSection(moduleID, title)
	section.Position = position
	return s.sections.CreateSection(ctx, section)
}

func (s *ModuleService) Section(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID) (*models.ContentSection, error) {
	if _, err := s.ownedModule(ctx, teacherID, moduleID); err != nil {
		return nil, err
	}
	section, err := s.sections.SectionByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section.ModuleID != moduleID {
		return nil, app_errors.ErrSectionNotFound
	}
	return &section, nil
}

func (s *ModuleService) UpdateSection(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID, update models.SectionUpdate) (*models.ContentSection, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, app_errors.ErrEmptySectionTitle
	}

	section, err := s.Section(ctx, teacherID, moduleID, sectionID)
	if err != nil {
		return nil, err
	}

	update.Apply(section)
	return s.sections.UpdateSection(ctx, *section)
}

func (s *ModuleService) RemoveSection(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID) error {
	section, err := s.Section(ctx, teacherID, moduleID, sectionID)
	if err != nil {
		return err
	}
	return s.sections.DeleteSectionAndUpdateOrder(ctx, sectionID, moduleID, section.Position)
}

// SwapSections exchanges the positions of two sections of the same module.
func (s *ModuleService) SwapSections(ctx context.Context, teacherID, moduleID, sectionID1, sectionID2 uuid.UUID) error {
	if _, err := s.Section(ctx, teacherID, moduleID, sectionID1); err != nil {
		return err
	}
	if _, err := s.Section(ctx, teacherID, moduleID, sectionID2); err != nil {
		return err
	}
	return s.sections.SwapSections(ctx, sectionID1, sectionID2)
}

func (s *ModuleService) AddQuestion(ctx context.Context, teacherID uuid.UUID, question models.AssessmentQuestion) (*models.AssessmentQuestion, error) {
	if _, err := s.ownedModule(ctx, teacherID, question.ModuleID); err != nil {
		return nil, err
	}
	return s.questions.AddQuestion(ctx, question)
}

func (s *ModuleService) RemoveQuestion(ctx context.Context, teacherID, moduleID, questionID uuid.UUID) error {
	if _, err := s.ownedModule(ctx, teacherID, moduleID); err != nil {
		return err
	}
	question, err := s.questions.QuestionByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question.ModuleID != moduleID {
		return app_errors.ErrQuestionNotFound
	}
	return s.questions.DeleteQuestionAndUpdateOrder(ctx, questionID, moduleID, question.Position)
}
