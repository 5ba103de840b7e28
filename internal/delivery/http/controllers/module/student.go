package module

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StudentService interface {
	ModuleForStudent(ctx context.Context, studentID, moduleID uuid.UUID) (*models.Module, error)
	ModulesForClass(ctx context.Context, studentID, classID uuid.UUID) ([]models.ModulePreview, error)
	SearchPublished(ctx context.Context, query string, size int) ([]models.ModulePreview, int, error)
}

type StudentHandler struct {
	log     logger.Log
	service StudentService
}

func NewStudentHandler(l logger.Log, s StudentService) *StudentHandler {
	return &StudentHandler{
		log:     l,
		service: s,
	}
}

func (h *StudentHandler) ModuleContent(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	module, err := h.service.ModuleForStudent(c.Request.Context(), id, moduleID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

func (h *StudentHandler) ClassModules(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	classID, err := uuid.Parse(c.Param("class_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class_id"})
		return
	}

	previews, err := h.service.ModulesForClass(c.Request.Context(), id, classID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": previews})
}

func (h *StudentHandler) SearchModules(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	previews, total, err := h.service.SearchPublished(c.Request.Context(), query, size)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "modules": previews})
}
