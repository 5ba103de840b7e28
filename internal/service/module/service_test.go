package module

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModuleRepo struct {
	modules map[uuid.UUID]*models.Module
}

func (f *fakeModuleRepo) CreateModule(ctx context.Context, m *models.Module) (uuid.UUID, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	stored := *m
	f.modules[m.ID] = &stored
	return m.ID, nil
}

func (f *fakeModuleRepo) ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error) {
	m, ok := f.modules[id]
	if !ok {
		return nil, app_errors.ErrModuleNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeModuleRepo) UpdateModule(ctx context.Context, m *models.Module) error {
	if _, ok := f.modules[m.ID]; !ok {
		return app_errors.ErrModuleNotFound
	}
	stored := *m
	f.modules[m.ID] = &stored
	return nil
}

func (f *fakeModuleRepo) DeleteModule(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.modules[id]; !ok {
		return app_errors.ErrModuleNotFound
	}
	delete(f.modules, id)
	return nil
}

func (f *fakeModuleRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	m, ok := f.modules[id]
	if !ok {
		return app_errors.ErrModuleNotFound
	}
	m.IsPublished = published
	return nil
}

func (f *fakeModuleRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Module, error) {
	var out []models.Module
	for _, m := range f.modules {
		if m.CreatedBy == teacherID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) ListPublishedForClass(ctx context.Context, classID uuid.UUID) ([]models.Module, error) {
	var out []models.Module
	for _, m := range f.modules {
		if m.IsPublished && m.TargetClassID == classID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) SectionCount(ctx context.Context, moduleID uuid.UUID) (int, error) {
	m, ok := f.modules[moduleID]
	if !ok {
		return 0, app_errors.ErrModuleNotFound
	}
	return len(m.Sections), nil
}

type fakeSectionRepo struct {
	sections map[uuid.UUID]models.ContentSection
	swapped  [][2]uuid.UUID
}

func (f *fakeSectionRepo) CreateSection(ctx context.Context, s models.ContentSection) (*models.ContentSection, error) {
	for id, existing := range f.sections {
		if existing.ModuleID == s.ModuleID && existing.Position >= s.Position {
			existing.Position++
			f.sections[id] = existing
		}
	}
	f.sections[s.ID] = s
	return &s, nil
}

func (f *fakeSectionRepo) SectionByID(ctx context.Context, id uuid.UUID) (models.ContentSection, error) {
	s, ok := f.sections[id]
	if !ok {
		return models.ContentSection{}, app_errors.ErrSectionNotFound
	}
	return s, nil
}

func (f *fakeSectionRepo) UpdateSection(ctx context.Context, s models.ContentSection) (*models.ContentSection, error) {
	if _, ok := f.sections[s.ID]; !ok {
		return nil, app_errors.ErrSectionNotFound
	}
	f.sections[s.ID] = s
	return &s, nil
}

func (f *fakeSectionRepo) DeleteSectionAndUpdateOrder(ctx context.Context, sectionID, moduleID uuid.UUID, position int) error {
	delete(f.sections, sectionID)
	for id, s := range f.sections {
		if s.ModuleID == moduleID && s.Position > position {
			s.Position--
			f.sections[id] = s
		}
	}
	return nil
}

func (f *fakeSectionRepo) SwapSections(ctx context.Context, id1, id2 uuid.UUID) error {
	s1, s2 := f.sections[id1], f.sections[id2]
	s1.Position, s2.Position = s2.Position, s1.Position
	f.sections[id1], f.sections[id2] = s1, s2
	f.swapped = append(f.swapped, [2]uuid.UUID{id1, id2})
	return nil
}

func (f *fakeSectionRepo) MaxPosition(ctx context.Context, moduleID uuid.UUID) (int, error) {
	max := 0
	for _, s := range f.sections {
		if s.ModuleID == moduleID && s.Position > max {
			max = s.Position
		}
	}
	return max, nil
}

func (f *fakeSectionRepo) byModule(moduleID uuid.UUID) []models.ContentSection {
	var out []models.ContentSection
	for _, s := range f.sections {
		if s.ModuleID == moduleID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]models.AssessmentQuestion
}

func (f *fakeQuestionRepo) AddQuestion(ctx context.Context, q models.AssessmentQuestion) (*models.AssessmentQuestion, error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	max := 0
	for _, existing := range f.questions {
		if existing.ModuleID == q.ModuleID && existing.Position > max {
			max = existing.Position
		}
	}
	q.Position = max + 1
	f.questions[q.ID] = q
	return &q, nil
}

func (f *fakeQuestionRepo) QuestionByID(ctx context.Context, id uuid.UUID) (models.AssessmentQuestion, error) {
	q, ok := f.questions[id]
	if !ok {
		return models.AssessmentQuestion{}, app_errors.ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeQuestionRepo) DeleteQuestionAndUpdateOrder(ctx context.Context, questionID, moduleID uuid.UUID, position int) error {
	delete(f.questions, questionID)
	for id, q := range f.questions {
		if q.ModuleID == moduleID && q.Position > position {
			q.Position--
			f.questions[id] = q
		}
	}
	return nil
}

type fakeClassRepo struct {
	classes  map[uuid.UUID]*models.Class
	enrolled map[uuid.UUID]map[uuid.UUID]bool
}

func (f *fakeClassRepo) ClassByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, app_errors.ErrClassNotFound
	}
	return c, nil
}

func (f *fakeClassRepo) IsEnrolled(ctx context.Context, classID, studentID uuid.UUID) (bool, error) {
	return f.enrolled[classID][studentID], nil
}

type fakeSearchRepo struct {
	indexed map[uuid.UUID]bool
	hits    []uuid.UUID
	total   int
}

func (f *fakeSearchRepo) Index(ctx context.Context, m models.Module) error {
	f.indexed[m.ID] = true
	return nil
}

func (f *fakeSearchRepo) Update(ctx context.Context, m models.Module) error {
	f.indexed[m.ID] = true
	return nil
}

func (f *fakeSearchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.indexed, id)
	return nil
}

func (f *fakeSearchRepo) Search(ctx context.Context, query string, size int) ([]uuid.UUID, error) {
	return f.hits, nil
}

func (f *fakeSearchRepo) Count(ctx context.Context, query string) (int, error) {
	return f.total, nil
}

type fakeImageRepo struct {
	uploaded []string
	deleted  []string
}

func (f *fakeImageRepo) UploadImage(ctx context.Context, moduleID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := "modules/" + moduleID.String() + "/images/" + filename
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeImageRepo) GetImageURL(ctx context.Context, objectKey string) (string, error) {
	return "https://storage.local/" + objectKey + "?signed", nil
}

func (f *fakeImageRepo) DeleteImage(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserRepo) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

type moduleFixture struct {
	svc       *ModuleService
	teacherID uuid.UUID
	moduleID  uuid.UUID
	modules   *fakeModuleRepo
	sections  *fakeSectionRepo
	questions *fakeQuestionRepo
	classes   *fakeClassRepo
	search    *fakeSearchRepo
	images    *fakeImageRepo
}

func newFixture(t *testing.T) *moduleFixture {
	t.Helper()

	teacherID := uuid.New()
	module := &models.Module{ID: uuid.New(), Title: "Cells", CreatedBy: teacherID}

	modules := &fakeModuleRepo{modules: map[uuid.UUID]*models.Module{module.ID: module}}
	sections := &fakeSectionRepo{sections: map[uuid.UUID]models.ContentSection{}}
	questions := &fakeQuestionRepo{questions: map[uuid.UUID]models.AssessmentQuestion{}}
	classes := &fakeClassRepo{classes: map[uuid.UUID]*models.Class{}, enrolled: map[uuid.UUID]map[uuid.UUID]bool{}}
	search := &fakeSearchRepo{indexed: map[uuid.UUID]bool{}}
	images := &fakeImageRepo{}
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		teacherID: {ID: teacherID, Username: "ms.frizzle"},
	}}

	svc := NewModuleService(logger.New("local"), modules, sections, questions, classes, search, images, users)
	return &moduleFixture{
		svc: svc, teacherID: teacherID, moduleID: module.ID,
		modules: modules, sections: sections, questions: questions,
		classes: classes, search: search, images: images,
	}
}

func (f *moduleFixture) appendSection(t *testing.T, title string) *models.ContentSection {
	t.Helper()
	s, err := f.svc.AppendSection(context.Background(), f.teacherID, f.moduleID, title)
	require.NoError(t, err)
	return s
}

func TestCreateModuleForcesUnpublished(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateModule(context.Background(), f.teacherID, models.Module{
		Title:       "Osmosis",
		IsPublished: true,
	})
	require.NoError(t, err)

	assert.False(t, created.IsPublished)
	assert.Equal(t, f.teacherID, created.CreatedBy)
}

func TestCreateModuleUnknownTargetClass(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateModule(context.Background(), f.teacherID, models.Module{
		Title:         "Osmosis",
		TargetClassID: uuid.New(),
	})
	assert.ErrorIs(t, err, app_errors.ErrClassNotFound)
}

func TestOwnershipGate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ModuleByID(context.Background(), uuid.New(), f.moduleID)
	assert.ErrorIs(t, err, app_errors.ErrNotModuleOwner)

	_, err = f.svc.ModuleByID(context.Background(), f.teacherID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrModuleNotFound)
}

func TestAppendSectionPositions(t *testing.T) {
	f := newFixture(t)

	first := f.appendSection(t, "Intro")
	second := f.appendSection(t, "Body")

	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)
}

func TestAppendSectionBlankTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AppendSection(context.Background(), f.teacherID, f.moduleID, "   ")
	assert.ErrorIs(t, err, app_errors.ErrEmptySectionTitle)
}

func TestInsertSectionShiftsFollowers(t *testing.T) {
	f := newFixture(t)
	f.appendSection(t, "Intro")
	f.appendSection(t, "Summary")

	inserted, err := f.svc.InsertSection(context.Background(), f.teacherID, f.moduleID, "Body", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted.Position)

	ordered := f.sections.byModule(f.moduleID)
	require.Len(t, ordered, 3)
	assert.Equal(t, []string{"Intro", "Body", "Summary"}, []string{ordered[0].Title, ordered[1].Title, ordered[2].Title})
	assert.Equal(t, []int{1, 2, 3}, []int{ordered[0].Position, ordered[1].Position, ordered[2].Position})
}

func TestInsertSectionOutOfRangeAppends(t *testing.T) {
	f := newFixture(t)
	f.appendSection(t, "Intro")

	inserted, err := f.svc.InsertSection(context.Background(), f.teacherID, f.moduleID, "Way out", 99)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted.Position)

	inserted, err = f.svc.InsertSection(context.Background(), f.teacherID, f.moduleID, "Negative", -3)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted.Position)
}

func TestRemoveSectionRenumbers(t *testing.T) {
	f := newFixture(t)
	f.appendSection(t, "Intro")
	middle := f.appendSection(t, "Body")
	f.appendSection(t, "Summary")

	require.NoError(t, f.svc.RemoveSection(context.Background(), f.teacherID, f.moduleID, middle.ID))

	ordered := f.sections.byModule(f.moduleID)
	require.Len(t, ordered, 2)
	assert.Equal(t, []int{1, 2}, []int{ordered[0].Position, ordered[1].Position})
}

func TestSectionFromOtherModuleNotVisible(t *testing.T) {
	f := newFixture(t)
	stray := models.NewSection(uuid.New(), "Other")
	f.sections.sections[stray.ID] = stray

	_, err := f.svc.Section(context.Background(), f.teacherID, f.moduleID, stray.ID)
	assert.ErrorIs(t, err, app_errors.ErrSectionNotFound)
}

func TestSwapSections(t *testing.T) {
	f := newFixture(t)
	first := f.appendSection(t, "Intro")
	second := f.appendSection(t, "Body")

	require.NoError(t, f.svc.SwapSections(context.Background(), f.teacherID, f.moduleID, first.ID, second.ID))

	ordered := f.sections.byModule(f.moduleID)
	assert.Equal(t, "Body", ordered[0].Title)
	assert.Equal(t, "Intro", ordered[1].Title)
}

func TestPublishIndexesModule(t *testing.T) {
	f := newFixture(t)

	published, err := f.svc.Publish(context.Background(), f.teacherID, f.moduleID)
	require.NoError(t, err)

	assert.True(t, published.IsPublished)
	assert.True(t, f.modules.modules[f.moduleID].IsPublished)
	assert.True(t, f.search.indexed[f.moduleID])
}

func TestUnpublishRemovesFromIndex(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Publish(context.Background(), f.teacherID, f.moduleID)
	require.NoError(t, err)

	unpublished, err := f.svc.Unpublish(context.Background(), f.teacherID, f.moduleID)
	require.NoError(t, err)

	assert.False(t, unpublished.IsPublished)
	assert.False(t, f.search.indexed[f.moduleID])
}

func TestSearchPublishedDropsStaleHits(t *testing.T) {
	f := newFixture(t)
	f.search.hits = []uuid.UUID{f.moduleID, uuid.New()}
	f.search.total = 2

	// module exists but is unpublished, so both hits are dropped; the total
	// still reflects what the index matched
	previews, total, err := f.svc.SearchPublished(context.Background(), "cells", 10)
	require.NoError(t, err)
	assert.Empty(t, previews)
	assert.Equal(t, 2, total)

	_, err = f.svc.Publish(context.Background(), f.teacherID, f.moduleID)
	require.NoError(t, err)

	previews, total, err = f.svc.SearchPublished(context.Background(), "cells", 10)
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, 2, total)
	assert.Equal(t, f.moduleID, previews[0].ID)
	assert.Equal(t, "ms.frizzle", previews[0].TeacherName)
}

func TestModuleForStudentGates(t *testing.T) {
	f := newFixture(t)
	studentID := uuid.New()

	_, err := f.svc.ModuleForStudent(context.Background(), studentID, f.moduleID)
	assert.ErrorIs(t, err, app_errors.ErrModuleNotPublished)

	classID := uuid.New()
	f.classes.classes[classID] = &models.Class{ID: classID, Name: "7A"}
	f.modules.modules[f.moduleID].TargetClassID = classID
	f.modules.modules[f.moduleID].IsPublished = true

	_, err = f.svc.ModuleForStudent(context.Background(), studentID, f.moduleID)
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)

	f.classes.enrolled[classID] = map[uuid.UUID]bool{studentID: true}
	module, err := f.svc.ModuleForStudent(context.Background(), studentID, f.moduleID)
	require.NoError(t, err)
	assert.Equal(t, f.moduleID, module.ID)
}

func TestModuleForStudentResolvesImageURLs(t *testing.T) {
	f := newFixture(t)
	section := models.NewSection(f.moduleID, "Diagram")
	section.Content.Rich().Document = models.BlockDocument{Blocks: []models.ContentBlock{
		{ID: "i1", Type: models.BlockImage, Data: models.ImageData{ObjectKey: "modules/x/images/cell.png"}},
	}}
	f.modules.modules[f.moduleID].Sections = []models.ContentSection{section}
	f.modules.modules[f.moduleID].IsPublished = true

	module, err := f.svc.ModuleForStudent(context.Background(), uuid.New(), f.moduleID)
	require.NoError(t, err)

	img := module.Sections[0].Content.Rich().Document.Blocks[0].Data.(models.ImageData)
	assert.Equal(t, "https://storage.local/modules/x/images/cell.png?signed", img.URL)
	assert.Equal(t, "modules/x/images/cell.png", img.ObjectKey)
}

func TestModulesForClassRequiresEnrollment(t *testing.T) {
	f := newFixture(t)
	classID := uuid.New()

	_, err := f.svc.ModulesForClass(context.Background(), uuid.New(), classID)
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)
}

func TestDeleteModuleCleansUpImages(t *testing.T) {
	f := newFixture(t)
	section := models.NewSection(f.moduleID, "Diagram")
	section.Content.Rich().Document = models.BlockDocument{Blocks: []models.ContentBlock{
		{ID: "i1", Type: models.BlockImage, Data: models.ImageData{ObjectKey: "modules/x/images/cell.png"}},
	}}
	f.modules.modules[f.moduleID].Sections = []models.ContentSection{section}

	require.NoError(t, f.svc.DeleteModule(context.Background(), f.teacherID, f.moduleID))

	assert.Equal(t, []string{"modules/x/images/cell.png"}, f.images.deleted)
	_, err := f.svc.ModuleByID(context.Background(), f.teacherID, f.moduleID)
	assert.ErrorIs(t, err, app_errors.ErrModuleNotFound)
}

func TestUploadSectionImageValidation(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.UploadSectionImage(context.Background(), f.teacherID, f.moduleID, "notes.pdf", strings.NewReader("x"), 1, "application/pdf")
	assert.ErrorIs(t, err, app_errors.ErrNotImage)

	_, _, err = f.svc.UploadSectionImage(context.Background(), f.teacherID, f.moduleID, "huge.png", strings.NewReader("x"), maxImageSize+1, "image/png")
	assert.ErrorIs(t, err, app_errors.ErrFileSize)

	key, url, err := f.svc.UploadSectionImage(context.Background(), f.teacherID, f.moduleID, "cell.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.NotEmpty(t, key)
	assert.Contains(t, url, key)
}

func TestRemoveQuestionChecksModule(t *testing.T) {
	f := newFixture(t)
	q, err := f.svc.AddQuestion(context.Background(), f.teacherID, models.AssessmentQuestion{
		ModuleID:      f.moduleID,
		Question:      "What pigment drives photosynthesis?",
		Type:          models.QuestionShortAnswer,
		CorrectAnswer: "chlorophyll",
		Points:        2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Position)

	otherModule := &models.Module{ID: uuid.New(), CreatedBy: f.teacherID}
	f.modules.modules[otherModule.ID] = otherModule

	err = f.svc.RemoveQuestion(context.Background(), f.teacherID, otherModule.ID, q.ID)
	assert.ErrorIs(t, err, app_errors.ErrQuestionNotFound)

	require.NoError(t, f.svc.RemoveQuestion(context.Background(), f.teacherID, f.moduleID, q.ID))
	_, err = f.questions.QuestionByID(context.Background(), q.ID)
	assert.ErrorIs(t, err, app_errors.ErrQuestionNotFound)
}
