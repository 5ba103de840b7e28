package editor

import (
	"context"
	"errors"
	"net/http"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/middleware"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	editorservice "github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/editor"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EditorService interface {
	Begin(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID) (*editorservice.EditSession, error)
	Session(ctx context.Context, teacherID, sessionID uuid.UUID) (*editorservice.EditSession, error)
	ApplyChange(ctx context.Context, teacherID, sessionID uuid.UUID, doc models.BlockDocument) (*editorservice.EditSession, error)
	UpdateMeta(ctx context.Context, teacherID, sessionID uuid.UUID, update models.SectionUpdate) (*editorservice.EditSession, error)
	Save(ctx context.Context, teacherID, sessionID uuid.UUID) (*models.ContentSection, error)
	Cancel(ctx context.Context, teacherID, sessionID uuid.UUID) error
	Preview(ctx context.Context, doc models.BlockDocument) models.RichText
}

type EditorHandler struct {
	log     logger.Log
	service EditorService
}

func NewEditorHandler(l logger.Log, s EditorService) *EditorHandler {
	return &EditorHandler{
		log:     l,
		service: s,
	}
}

func handleError(c *gin.Context, log logger.Log, err error) {
	switch {
	case errors.Is(err, app_errors.ErrSessionNotFound),
		errors.Is(err, app_errors.ErrSectionNotFound),
		errors.Is(err, app_errors.ErrModuleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrNotModuleOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrContentNotEditable),
		errors.Is(err, app_errors.ErrEmptySectionTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.ErrorErr("editor request failed", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func clientID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

func sessionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session_id"})
		return uuid.Nil, false
	}
	return id, true
}

type beginRequest struct {
	ModuleID  uuid.UUID `json:"module_id" binding:"required"`
	SectionID uuid.UUID `json:"section_id" binding:"required"`
}

func (h *EditorHandler) Begin(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var input beginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Begin(c.Request.Context(), id, input.ModuleID, input.SectionID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *EditorHandler) Session(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	session, err := h.service.Session(c.Request.Context(), id, sessionID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type applyChangeRequest struct {
	Document models.BlockDocument `json:"editorjs_data"`
}

func (h *EditorHandler) ApplyChange(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var input applyChangeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.ApplyChange(c.Request.Context(), id, sessionID, input.Document)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *EditorHandler) UpdateMeta(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var update models.SectionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.UpdateMeta(c.Request.Context(), id, sessionID, update)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *EditorHandler) Save(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	section, err := h.service.Save(c.Request.Context(), id, sessionID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *EditorHandler) Cancel(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, sessionID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *EditorHandler) Preview(c *gin.Context) {
	var input applyChangeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.service.Preview(c.Request.Context(), input.Document))
}
