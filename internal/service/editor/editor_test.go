package editor

import (
	"context"
	"encoding/json"
	"sync"
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

func (f *fakeModuleRepo) ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error) {
	m, ok := f.modules[id]
	if !ok {
		return nil, app_errors.ErrModuleNotFound
	}
	return m, nil
}

type fakeSectionRepo struct {
	sections map[uuid.UUID]models.ContentSection
	updated  *models.ContentSection
}

func (f *fakeSectionRepo) SectionByID(ctx context.Context, id uuid.UUID) (models.ContentSection, error) {
	s, ok := f.sections[id]
	if !ok {
		return models.ContentSection{}, app_errors.ErrSectionNotFound
	}
	return s, nil
}

func (f *fakeSectionRepo) UpdateSection(ctx context.Context, section models.ContentSection) (*models.ContentSection, error) {
	f.updated = &section
	f.sections[section.ID] = section
	return &section, nil
}

type editorFixture struct {
	svc       *EditorService
	teacherID uuid.UUID
	moduleID  uuid.UUID
	section   models.ContentSection
	sections  *fakeSectionRepo
}

func newFixture(t *testing.T) *editorFixture {
	t.Helper()

	teacherID := uuid.New()
	module := &models.Module{ID: uuid.New(), Title: "Cells", CreatedBy: teacherID}
	section := models.NewSection(module.ID, "Intro")

	sections := &fakeSectionRepo{sections: map[uuid.UUID]models.ContentSection{section.ID: section}}
	svc := NewEditorService(
		logger.New("local"),
		&fakeModuleRepo{modules: map[uuid.UUID]*models.Module{module.ID: module}},
		sections,
	)
	return &editorFixture{svc: svc, teacherID: teacherID, moduleID: module.ID, section: section, sections: sections}
}

func sampleDoc() models.BlockDocument {
	return models.BlockDocument{Blocks: []models.ContentBlock{
		{ID: "h1", Type: models.BlockHeader, Data: models.HeaderData{Text: "Membrane", Level: 2}},
		{ID: "p1", Type: models.BlockParagraph, Data: models.ParagraphData{Text: "Keeps the inside in."}},
	}}
}

func TestBeginSnapshotsSection(t *testing.T) {
	f := newFixture(t)

	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	assert.Equal(t, f.teacherID, session.TeacherID)
	assert.Equal(t, f.section.ID, session.Section.ID)
	assert.False(t, session.Dirty)
}

func TestBeginRejectsNonOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Begin(context.Background(), uuid.New(), f.moduleID, f.section.ID)
	assert.ErrorIs(t, err, app_errors.ErrNotModuleOwner)
}

func TestBeginRejectsSectionFromOtherModule(t *testing.T) {
	f := newFixture(t)
	stray := models.NewSection(uuid.New(), "Other")
	f.sections.sections[stray.ID] = stray

	_, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, stray.ID)
	assert.ErrorIs(t, err, app_errors.ErrSectionNotFound)
}

func TestSessionUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Session(context.Background(), f.teacherID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrSessionNotFound)
}

func TestSessionWrongTeacher(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	_, err = f.svc.Session(context.Background(), uuid.New(), session.ID)
	assert.ErrorIs(t, err, app_errors.ErrSessionNotFound)
}

func TestApplyChangeRecomputesCaches(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	session, err = f.svc.ApplyChange(context.Background(), f.teacherID, session.ID, sampleDoc())
	require.NoError(t, err)

	rich := session.Section.Content.Rich()
	require.NotNil(t, rich)
	assert.Equal(t, "Membrane\nKeeps the inside in.", rich.Text)
	assert.Contains(t, rich.HTML, "<h2>Membrane</h2>")
	assert.Equal(t, []string{"Membrane"}, session.Section.KeyPoints)
	assert.True(t, session.Dirty)
}

func TestApplyChangeRejectsNonEditableContent(t *testing.T) {
	f := newFixture(t)
	quiz := models.NewSection(f.moduleID, "Quiz")
	quiz.Content = models.SectionContent{
		Type: models.ContentTypeQuickCheck,
		Data: &models.QuickCheckContent{Question: "2+2?", Answer: "4"},
	}
	f.sections.sections[quiz.ID] = quiz

	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, quiz.ID)
	require.NoError(t, err)

	_, err = f.svc.ApplyChange(context.Background(), f.teacherID, session.ID, sampleDoc())
	assert.ErrorIs(t, err, app_errors.ErrContentNotEditable)
}

func TestUpdateMetaIgnoresContent(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	session, err = f.svc.ApplyChange(context.Background(), f.teacherID, session.ID, sampleDoc())
	require.NoError(t, err)

	title := "Renamed"
	smuggled := models.SectionContent{Type: models.ContentTypeAssessment, Data: &models.AssessmentContent{}}
	session, err = f.svc.UpdateMeta(context.Background(), f.teacherID, session.ID, models.SectionUpdate{
		Title:   &title,
		Content: &smuggled,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", session.Section.Title)
	// content changes only go through ApplyChange
	assert.Equal(t, models.ContentTypeText, session.Section.Content.Type)
	assert.Equal(t, "Membrane\nKeeps the inside in.", session.Section.Content.Rich().Text)
}

func TestSavePersistsAndEndsSession(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	_, err = f.svc.ApplyChange(context.Background(), f.teacherID, session.ID, sampleDoc())
	require.NoError(t, err)

	saved, err := f.svc.Save(context.Background(), f.teacherID, session.ID)
	require.NoError(t, err)
	require.NotNil(t, f.sections.updated)
	assert.Equal(t, saved.ID, f.sections.updated.ID)
	assert.Equal(t, "Membrane\nKeeps the inside in.", f.sections.updated.Content.Rich().Text)

	_, err = f.svc.Session(context.Background(), f.teacherID, session.ID)
	assert.ErrorIs(t, err, app_errors.ErrSessionNotFound)
}

func TestSaveRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	title := "   "
	_, err = f.svc.UpdateMeta(context.Background(), f.teacherID, session.ID, models.SectionUpdate{Title: &title})
	require.NoError(t, err)

	_, err = f.svc.Save(context.Background(), f.teacherID, session.ID)
	assert.ErrorIs(t, err, app_errors.ErrEmptySectionTitle)
}

func TestCancelDiscardsWorkingCopy(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	_, err = f.svc.ApplyChange(context.Background(), f.teacherID, session.ID, sampleDoc())
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(context.Background(), f.teacherID, session.ID))
	assert.Nil(t, f.sections.updated)

	_, err = f.svc.Session(context.Background(), f.teacherID, session.ID)
	assert.ErrorIs(t, err, app_errors.ErrSessionNotFound)
}

func TestSessionReturnsDetachedWorkingCopy(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	_, err = f.svc.ApplyChange(context.Background(), f.teacherID, session.ID, sampleDoc())
	require.NoError(t, err)

	// mutations on a returned session must never leak into the working copy
	got, err := f.svc.Session(context.Background(), f.teacherID, session.ID)
	require.NoError(t, err)
	got.Section.Title = "vandalized"
	got.Section.Content.Rich().Text = "vandalized"
	got.Section.Content.Rich().Document.Blocks[0].Data = models.ParagraphData{Text: "vandalized"}
	got.Section.KeyPoints[0] = "vandalized"

	fresh, err := f.svc.Session(context.Background(), f.teacherID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro", fresh.Section.Title)
	assert.Equal(t, "Membrane\nKeeps the inside in.", fresh.Section.Content.Rich().Text)
	assert.Equal(t, models.HeaderData{Text: "Membrane", Level: 2}, fresh.Section.Content.Rich().Document.Blocks[0].Data)
	assert.Equal(t, []string{"Membrane"}, fresh.Section.KeyPoints)
}

func TestConcurrentEditAndRead(t *testing.T) {
	f := newFixture(t)
	session, err := f.svc.Begin(context.Background(), f.teacherID, f.moduleID, f.section.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := f.svc.ApplyChange(context.Background(), f.teacherID, session.ID, sampleDoc())
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			got, err := f.svc.Session(context.Background(), f.teacherID, session.ID)
			assert.NoError(t, err)
			_, err = json.Marshal(got)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()
}

func TestPreviewIsStateless(t *testing.T) {
	f := newFixture(t)

	rich := f.svc.Preview(context.Background(), sampleDoc())
	assert.Equal(t, "Membrane\nKeeps the inside in.", rich.Text)
	assert.Contains(t, rich.HTML, "<p>Keeps the inside in.</p>")
}
