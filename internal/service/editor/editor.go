// Package editor implements section editing sessions. A session holds a
// working copy of one section; every content change replaces the block
// document wholesale and recomputes the derived text, HTML and key point
// caches. Nothing is persisted until Save.
package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/content"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/google/uuid"
)

type moduleRepo interface {
	ModuleByID(ctx context.Context, id uuid.UUID) (*models.Module, error)
}

type sectionRepo interface {
	SectionByID(ctx context.Context, id uuid.UUID) (models.ContentSection, error)
	UpdateSection(ctx context.Context, section models.ContentSection) (*models.ContentSection, error)
}

type EditSession struct {
	ID         uuid.UUID             `json:"id"`
	TeacherID  uuid.UUID             `json:"teacher_id"`
	ModuleID   uuid.UUID             `json:"module_id"`
	Section    models.ContentSection `json:"section"`
	StartedAt  time.Time             `json:"started_at"`
	LastEditAt time.Time             `json:"last_edit_at"`
	Dirty      bool                  `json:"dirty"`
}

// snapshot detaches the session from the map entry. The section is deep
// copied so callers never hold a pointer into live session state.
func (s *EditSession) snapshot() *EditSession {
	copied := *s
	copied.Section = s.Section.Clone()
	return &copied
}

// EditorService keeps sessions in memory. All access to the session map and
// to session fields happens under mu; callers only ever see snapshots.
type EditorService struct {
	log      logger.Log
	modules  moduleRepo
	sections sectionRepo

	mu       sync.RWMutex
	sessions map[uuid.UUID]*EditSession
}

func NewEditorService(l logger.Log, modules moduleRepo, sections sectionRepo) *EditorService {
	return &EditorService{
		log:      l,
		modules:  modules,
		sections: sections,
		sessions: make(map[uuid.UUID]*EditSession),
	}
}

func (e *EditorService) Begin(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID) (*EditSession, error) {
	module, err := e.modules.ModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.CreatedBy != teacherID {
		return nil, app_errors.ErrNotModuleOwner
	}

	section, err := e.sections.SectionByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section.ModuleID != moduleID {
		return nil, app_errors.ErrSectionNotFound
	}

	now := time.Now().UTC()
	session := &EditSession{
		ID:         uuid.New(),
		TeacherID:  teacherID,
		ModuleID:   moduleID,
		Section:    section.Clone(),
		StartedAt:  now,
		LastEditAt: now,
	}

	e.mu.Lock()
	e.sessions[session.ID] = session
	e.mu.Unlock()

	e.log.Debug("edit session started", "session_id", session.ID, "section_id", sectionID)
	return session.snapshot(), nil
}

// session looks up a live session. The caller must hold mu.
func (e *EditorService) session(teacherID, sessionID uuid.UUID) (*EditSession, error) {
	session, ok := e.sessions[sessionID]
	if !ok || session.TeacherID != teacherID {
		return nil, app_errors.ErrSessionNotFound
	}
	return session, nil
}

func (e *EditorService) Session(ctx context.Context, teacherID, sessionID uuid.UUID) (*EditSession, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	session, err := e.session(teacherID, sessionID)
	if err != nil {
		return nil, err
	}
	return session.snapshot(), nil
}

// ApplyChange replaces the working copy's block document and recomputes the
// derived caches. Sections without editable rich text reject the change.
func (e *EditorService) ApplyChange(ctx context.Context, teacherID, sessionID uuid.UUID, doc models.BlockDocument) (*EditSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(teacherID, sessionID)
	if err != nil {
		return nil, err
	}

	rich := session.Section.Content.Rich()
	if rich == nil {
		return nil, app_errors.ErrContentNotEditable
	}

	rich.Document = doc
	rich.Text = content.ToPlainText(doc)
	rich.HTML = content.ToHTML(doc)
	session.Section.KeyPoints = content.ExtractKeyPoints(doc)
	session.LastEditAt = time.Now().UTC()
	session.Dirty = true

	return session.snapshot(), nil
}

// UpdateMeta merges a partial update into the working copy. Content changes
// go through ApplyChange so the caches stay consistent.
func (e *EditorService) UpdateMeta(ctx context.Context, teacherID, sessionID uuid.UUID, update models.SectionUpdate) (*EditSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, err := e.session(teacherID, sessionID)
	if err != nil {
		return nil, err
	}

	update.Content = nil
	update.Apply(&session.Section)
	session.LastEditAt = time.Now().UTC()
	session.Dirty = true

	return session.snapshot(), nil
}

// Save persists the working copy and ends the session. A blanked title is
// the one save-time rejection; everything else was validated on the way in.
// Edits racing the persist call are dropped with the session, per
// last-write-wins.
func (e *EditorService) Save(ctx context.Context, teacherID, sessionID uuid.UUID) (*models.ContentSection, error) {
	e.mu.RLock()
	session, err := e.session(teacherID, sessionID)
	if err != nil {
		e.mu.RUnlock()
		return nil, err
	}
	working := session.Section.Clone()
	e.mu.RUnlock()

	if strings.TrimSpace(working.Title) == "" {
		return nil, app_errors.ErrEmptySectionTitle
	}

	saved, err := e.sections.UpdateSection(ctx, working)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	delete(e.sessions, sessionID)
	e.mu.Unlock()

	e.log.Debug("edit session saved", "session_id", sessionID, "section_id", saved.ID)
	return saved, nil
}

func (e *EditorService) Cancel(ctx context.Context, teacherID, sessionID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.session(teacherID, sessionID); err != nil {
		return err
	}
	delete(e.sessions, sessionID)
	return nil
}

// Preview converts a document without touching any session state.
func (e *EditorService) Preview(ctx context.Context, doc models.BlockDocument) models.RichText {
	return models.RichText{
		Document: doc,
		Text:     content.ToPlainText(doc),
		HTML:     content.ToHTML(doc),
	}
}
