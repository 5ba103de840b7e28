package class

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

type ClassService interface {
	CreateClass(ctx context.Context, teacherID uuid.UUID, class models.Class) (*models.Class, error)
	Class(ctx context.Context, id uuid.UUID) (*models.Class, error)
	TeacherClasses(ctx context.Context, teacherID uuid.UUID) ([]models.Class, error)
	StudentClasses(ctx context.Context, studentID uuid.UUID) ([]models.Class, error)
	Enroll(ctx context.Context, classID, studentID uuid.UUID) error
}

type ClassHandler struct {
	log     logger.Log
	service ClassService
}

func NewClassHandler(l logger.Log, s ClassService) *ClassHandler {
	return &ClassHandler{
		log:     l,
		service: s,
	}
}

func clientID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

type newClassRequest struct {
	Name       string `json:"name" binding:"required"`
	GradeLevel string `json:"grade_level"`
}

func (h *ClassHandler) CreateClass(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var input newClassRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateClass(c.Request.Context(), id, models.Class{
		Name:       input.Name,
		GradeLevel: input.GradeLevel,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		h.log.ErrorErr("error creating class", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ClassHandler) MyClasses(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	classes, err := h.service.TeacherClasses(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *ClassHandler) EnrolledClasses(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	classes, err := h.service.StudentClasses(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *ClassHandler) Enroll(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	classID, err := uuid.Parse(c.Param("class_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class_id"})
		return
	}

	if err := h.service.Enroll(c.Request.Context(), classID, id); err != nil {
		switch {
		case errors.Is(err, app_errors.ErrClassNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrAlreadyEnrolled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			h.log.ErrorErr("error enrolling student", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "enrolled"})
}
