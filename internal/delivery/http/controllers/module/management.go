package module

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/middleware"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementService interface {
	CreateModule(ctx context.Context, teacherID uuid.UUID, module models.Module) (*models.Module, error)
	ModuleByID(ctx context.Context, teacherID, moduleID uuid.UUID) (*models.Module, error)
	MyModules(ctx context.Context, teacherID uuid.UUID) ([]models.ModulePreview, error)
	UpdateModule(ctx context.Context, teacherID uuid.UUID, module models.Module) (*models.Module, error)
	DeleteModule(ctx context.Context, teacherID, moduleID uuid.UUID) error
	Publish(ctx context.Context, teacherID, moduleID uuid.UUID) (*models.Module, error)
	Unpublish(ctx context.Context, teacherID, moduleID uuid.UUID) (*models.Module, error)
	UploadSectionImage(ctx context.Context, teacherID, moduleID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (objectKey, url string, err error)
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(l logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{
		log:     l,
		service: s,
	}
}

// handleError maps service sentinels to HTTP codes; everything unmatched is
// a 500.
func handleError(c *gin.Context, log logger.Log, err error) {
	switch {
	case errors.Is(err, app_errors.ErrModuleNotFound),
		errors.Is(err, app_errors.ErrSectionNotFound),
		errors.Is(err, app_errors.ErrQuestionNotFound),
		errors.Is(err, app_errors.ErrClassNotFound),
		errors.Is(err, app_errors.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrNotModuleOwner),
		errors.Is(err, app_errors.ErrNotEnrolled),
		errors.Is(err, app_errors.ErrModuleNotPublished):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrEmptySectionTitle),
		errors.Is(err, app_errors.ErrDuplicatePosition),
		errors.Is(err, app_errors.ErrNotImage),
		errors.Is(err, app_errors.ErrNoAssessment),
		errors.Is(err, app_errors.ErrContentNotEditable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrFileSize):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		log.ErrorErr("request failed", err, "path", c.Request.URL.Path)
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

func moduleIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("module_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module_id"})
		return uuid.Nil, false
	}
	return id, true
}

type moduleRequest struct {
	Title                    string                 `json:"title" binding:"required"`
	Description              string                 `json:"description"`
	LearningObjectives       []string               `json:"learning_objectives"`
	DifficultyLevel          string                 `json:"difficulty_level"`
	EstimatedDurationMinutes int                    `json:"estimated_duration_minutes"`
	Prerequisites            []string               `json:"prerequisites"`
	TargetClassID            uuid.UUID              `json:"target_class_id"`
	TargetLearningStyles     []models.LearningStyle `json:"target_learning_styles"`
}

func (r moduleRequest) toModel() models.Module {
	return models.Module{
		Title:                    r.Title,
		Description:              r.Description,
		LearningObjectives:       r.LearningObjectives,
		DifficultyLevel:          r.DifficultyLevel,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		Prerequisites:            r.Prerequisites,
		TargetClassID:            r.TargetClassID,
		TargetLearningStyles:     r.TargetLearningStyles,
	}
}

func (h *ManagementHandler) CreateModule(c *gin.Context) {
	var input moduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, ok := clientID(c)
	if !ok {
		return
	}

	created, err := h.service.CreateModule(c.Request.Context(), id, input.toModel())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ManagementHandler) ModuleByID(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	module, err := h.service.ModuleByID(c.Request.Context(), id, moduleID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

func (h *ManagementHandler) MyModules(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	previews, err := h.service.MyModules(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": previews})
}

func (h *ManagementHandler) UpdateModule(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	var input moduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	module := input.toModel()
	module.ID = moduleID

	updated, err := h.service.UpdateModule(c.Request.Context(), id, module)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ManagementHandler) DeleteModule(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteModule(c.Request.Context(), id, moduleID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *ManagementHandler) PublishModule(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	module, err := h.service.Publish(c.Request.Context(), id, moduleID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

func (h *ManagementHandler) UnpublishModule(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	module, err := h.service.Unpublish(c.Request.Context(), id, moduleID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

func (h *ManagementHandler) UploadSectionImage(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
	}

	objectKey, url, err := h.service.UploadSectionImage(
		c.Request.Context(),
		id,
		moduleID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"object_key": objectKey,
		"url":        url,
	})
}
