package progress

import (
	"context"
	"errors"
	"net/http"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app_errors"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/middleware"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressService interface {
	SubmitAnswers(ctx context.Context, studentID, moduleID uuid.UUID, answers []models.AssessmentAnswer) (*models.ModuleProgress, error)
	Result(ctx context.Context, studentID, moduleID uuid.UUID) (*models.ModuleProgress, error)
}

type ProgressHandler struct {
	log     logger.Log
	service ProgressService
}

func NewProgressHandler(l logger.Log, s ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:     l,
		service: s,
	}
}

func params(c *gin.Context) (studentID, moduleID uuid.UUID, ok bool) {
	studentID, ok = middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	moduleID, err := uuid.Parse(c.Param("module_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module_id"})
		return uuid.Nil, uuid.Nil, false
	}
	return studentID, moduleID, true
}

type submitRequest struct {
	Answers []models.AssessmentAnswer `json:"answers" binding:"required"`
}

func (h *ProgressHandler) SubmitAssessment(c *gin.Context) {
	studentID, moduleID, ok := params(c)
	if !ok {
		return
	}

	var input submitRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.SubmitAnswers(c.Request.Context(), studentID, moduleID, input.Answers)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrModuleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrModuleNotPublished), errors.Is(err, app_errors.ErrNotEnrolled):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrNoAssessment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			h.log.ErrorErr("error grading assessment", err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProgressHandler) AssessmentResult(c *gin.Context) {
	studentID, moduleID, ok := params(c)
	if !ok {
		return
	}

	result, err := h.service.Result(c.Request.Context(), studentID, moduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no attempt recorded"})
		return
	}
	c.JSON(http.StatusOK, result)
}
