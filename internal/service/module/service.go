package module

import (
	"context"
	"io"
	"strings"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/google/uuid"
)

const maxImageSize = 10 << 20

type moduleRepo interface {
	CreateModule(ctx context.Context, module *models.Module) (uuid.UUID, error)
	ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error)
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModule(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Module, error)
	ListPublishedForClass(ctx context.Context, classID uuid.UUID) ([]models.Module, error)
	SectionCount(ctx context.Context, moduleID uuid.UUID) (int, error)
}

type sectionRepo interface {
	CreateSection(ctx context.Context, section models.ContentSection) (*models.ContentSection, error)
	SectionByID(ctx context.Context, id uuid.UUID) (models.ContentSection, error)
	UpdateSection(ctx context.Context, section models.ContentSection) (*models.ContentSection, error)
	DeleteSectionAndUpdateOrder(ctx context.Context, sectionID, moduleID uuid.UUID, position int) error
	SwapSections(ctx context.Context, sectionID1, sectionID2 uuid.UUID) error
	MaxPosition(ctx context.Context, moduleID uuid.UUID) (int, error)
}

type questionRepo interface {
	AddQuestion(ctx context.Context, question models.AssessmentQuestion) (*models.AssessmentQuestion, error)
	QuestionByID(ctx context.Context, id uuid.UUID) (models.AssessmentQuestion, error)
	DeleteQuestionAndUpdateOrder(ctx context.Context, questionID, moduleID uuid.UUID, position int) error
}

type classRepo interface {
	ClassByID(ctx context.Context, id uuid.UUID) (*models.Class, error)
	IsEnrolled(ctx context.Context, classID, studentID uuid.UUID) (bool, error)
}

type searchRepo interface {
	Index(ctx context.Context, module models.Module) error
	Update(ctx context.Context, module models.Module) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
	Count(ctx context.Context, query string) (int, error)
}

type imageRepo interface {
	UploadImage(ctx context.Context, moduleID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetImageURL(ctx context.Context, objectKey string) (string, error)
	DeleteImage(ctx context.Context, objectKey string) error
}

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ModuleService struct {
	log       logger.Log
	modules   moduleRepo
	sections  sectionRepo
	questions questionRepo
	classes   classRepo
	search    searchRepo
	images    imageRepo
	users     userRepo
}

func NewModuleService(
	l logger.Log,
	modules moduleRepo,
	sections sectionRepo,
	questions questionRepo,
	classes classRepo,
	search searchRepo,
	images imageRepo,
	users userRepo,
) *ModuleService {
	return &ModuleService{
		log:       l,
		modules:   modules,
		sections:  sections,
		questions: questions,
		classes:   classes,
		search:    search,
		images:    images,
		users:     users,
	}
}

// ownedModule loads a module and verifies the caller authored it.
func (s *ModuleService) ownedModule(ctx context.Context, teacherID, moduleID uuid.UUID) (*models.Module, error) {
	module, err := s.modules.ModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.CreatedBy != teacherID {
		return nil, app_errors.ErrNotModuleOwner
	}
	return module, nil
}

func (s *ModuleService) CreateModule(ctx context.Context, teacherID uuid.UUID, module models.Module) (*models.Module, error) {
	module.CreatedBy = teacherID
	module.IsPublished = false

	if module.TargetClassID != uuid.Nil {
		if _, err := s.classes.ClassByID(ctx, module.TargetClassID); err != nil {
			return nil, err
		}
	}

	id, err := s.modules.CreateModule(ctx, &module)
	if err != nil {
		return nil, err
	}
	s.log.Info("module created", "module_id", id, "teacher_id", teacherID)
	return &module, nil
}

func (s *ModuleService) ModuleByID(ctx context.Context, teacherID, moduleID uuid.UUID) (*models.Module, error) {
	return s.ownedModule(ctx, teacherID, moduleID)
}

func (s *ModuleService) MyModules(ctx context.Context, teacherID uuid.UUID) ([]models.ModulePreview, error) {
	modules, err := s.modules.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	teacherName := ""
	if teacher, err := s.users.UserByID(ctx, teacherID); err == nil {
		teacherName = teacher.Username
	}

	previews := make([]models.ModulePreview, 0, len(modules))
	for _, m := range modules {
		count, err := s.modules.SectionCount(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		previews = append(previews, preview(m, teacherName, count))
	}
	return previews, nil
}

func preview(m models.Module, teacherName string, sectionCount int) models.ModulePreview {
	return models.ModulePreview{
		ID:                       m.ID,
		Title:                    m.Title,
		Description:              m.Description,
		TeacherName:              teacherName,
		DifficultyLevel:          m.DifficultyLevel,
		EstimatedDurationMinutes: m.EstimatedDurationMinutes,
		TargetLearningStyles:     m.TargetLearningStyles,
		SectionCount:             sectionCount,
		IsPublished:              m.IsPublished,
	}
}

func (s *ModuleService) UpdateModule(ctx context.Context, teacherID uuid.UUID, module models.Module) (*models.Module, error) {
	current, err := s.ownedModule(ctx, teacherID, module.ID)
	if err != nil {
		return nil, err
	}

	if module.TargetClassID != uuid.Nil && module.TargetClassID != current.TargetClassID {
		if _, err := s.classes.ClassByID(ctx, module.TargetClassID); err != nil {
			return nil, err
		}
	}

	if err := s.modules.UpdateModule(ctx, &module); err != nil {
		return nil, err
	}
	if current.IsPublished {
		if err := s.search.Update(ctx, module); err != nil {
			s.log.ErrorErr("failed to update search index", err, "module_id", module.ID)
		}
	}
	return s.modules.ModuleByID(ctx, module.ID)
}

func (s *ModuleService) DeleteModule(ctx context.Context, teacherID, moduleID uuid.UUID) error {
	module, err := s.ownedModule(ctx, teacherID, moduleID)
	if err != nil {
		return err
	}

	for _, key := range imageKeys(module) {
		if err := s.images.DeleteImage(ctx, key); err != nil {
			s.log.ErrorErr("failed to delete section image", err, "object_key", key)
		}
	}

	if module.IsPublished {
		if err := s.search.Delete(ctx, moduleID); err != nil {
			s.log.ErrorErr("failed to remove module from search index", err, "module_id", moduleID)
		}
	}

	return s.modules.DeleteModule(ctx, moduleID)
}

func imageKeys(module *models.Module) []string {
	var keys []string
	for i := range module.Sections {
		rich := module.Sections[i].Content.Rich()
		if rich == nil {
			continue
		}
		for _, b := range rich.Document.Blocks {
			if img, ok := b.Data.(models.ImageData); ok && img.ObjectKey != "" {
				keys = append(keys, img.ObjectKey)
			}
		}
	}
	return keys
}

func (s *ModuleService) Publish(ctx context.Context, teacherID, moduleID uuid.UUID) (*models.Module, error) {
	module, err := s.ownedModule(ctx, teacherID, moduleID)
	if err != nil {
		return nil, err
	}
	if err := s.modules.SetPublished(ctx, moduleID, true); err != nil {
		return nil, err
	}
	module.IsPublished = true
	if err := s.search.Index(ctx, *module); err != nil {
		s.log.ErrorErr("failed to index published module", err, "module_id", moduleID)
	}
	s.log.Info("module published", "module_id", moduleID)
	return module, nil
}

func (s *ModuleService) Unpublish(ctx context.Context, teacherID, moduleID uuid.UUID) (*models.Module, error) {
	module, err := s.ownedModule(ctx, teacherID, moduleID)
	if err != nil {
		return nil, err
	}
	if err := s.modules.SetPublished(ctx, moduleID, false); err != nil {
		return nil, err
	}
	module.IsPublished = false
	if err := s.search.Delete(ctx, moduleID); err != nil {
		s.log.ErrorErr("failed to remove module from search index", err, "module_id", moduleID)
	}
	return module, nil
}

// SearchPublished resolves full-text hits to previews and reports the total
// number of index matches, which can exceed the page size. Hits that point at
// modules deleted or unpublished since indexing are dropped.
func (s *ModuleService) SearchPublished(ctx context.Context, query string, size int) ([]models.ModulePreview, int, error) {
	ids, err := s.search.Search(ctx, query, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.search.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	previews := make([]models.ModulePreview, 0, len(ids))
	for _, id := range ids {
		module, err := s.modules.ModuleByID(ctx, id)
		if err != nil {
			continue
		}
		if !module.IsPublished {
			continue
		}
		teacherName := ""
		if teacher, err := s.users.UserByID(ctx, module.CreatedBy); err == nil {
			teacherName = teacher.Username
		}
		previews = append(previews, preview(*module, teacherName, len(module.Sections)))
	}
	return previews, total, nil
}

// ModuleForStudent returns a published module to an enrolled student with
// image object keys resolved to presigned URLs.
func (s *ModuleService) ModuleForStudent(ctx context.Context, studentID, moduleID uuid.UUID) (*models.Module, error) {
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

	s.resolveImageURLs(ctx, module)
	return module, nil
}

func (s *ModuleService) ModulesForClass(ctx context.Context, studentID, classID uuid.UUID) ([]models.ModulePreview, error) {
	enrolled, err := s.classes.IsEnrolled(ctx, classID, studentID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, app_errors.ErrNotEnrolled
	}

	modules, err := s.modules.ListPublishedForClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	previews := make([]models.ModulePreview, 0, len(modules))
	for _, m := range modules {
		count, err := s.modules.SectionCount(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		teacherName := ""
		if teacher, err := s.users.UserByID(ctx, m.CreatedBy); err == nil {
			teacherName = teacher.Username
		}
		previews = append(previews, preview(m, teacherName, count))
	}
	return previews, nil
}

func (s *ModuleService) resolveImageURLs(ctx context.Context, module *models.Module) {
	for i := range module.Sections {
		rich := module.Sections[i].Content.Rich()
		if rich == nil {
			continue
		}
		for j, b := range rich.Document.Blocks {
			img, ok := b.Data.(models.ImageData)
			if !ok || img.ObjectKey == "" {
				continue
			}
			url, err := s.images.GetImageURL(ctx, img.ObjectKey)
			if err != nil {
				s.log.ErrorErr("failed to presign image", err, "object_key", img.ObjectKey)
				continue
			}
			img.URL = url
			rich.Document.Blocks[j].Data = img
		}
	}
}

func (s *ModuleService) UploadSectionImage(
	ctx context.Context,
	teacherID, moduleID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (objectKey, url string, err error) {
	if _, err = s.ownedModule(ctx, teacherID, moduleID); err != nil {
		return "", "", err
	}
	if size > maxImageSize {
		return "", "", app_errors.ErrFileSize
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", app_errors.ErrNotImage
	}

	objectKey, err = s.images.UploadImage(ctx, moduleID, filename, reader, size, contentType)
	if err != nil {
		return "", "", err
	}
	url, err = s.images.GetImageURL(ctx, objectKey)
	if err != nil {
		return "", "", err
	}
	return objectKey, url, nil
}
