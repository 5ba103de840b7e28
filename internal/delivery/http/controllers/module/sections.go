package module

import (
	"context"
	"net/http"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SectionService interface {
	AppendSection(ctx context.Context, teacherID, moduleID uuid.UUID, title string) (*models.ContentSection, error)
	InsertSection(ctx context.Context, teacherID, moduleID uuid.UUID, title string, position int) (*models.ContentSection, error)
	Section(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID) (*models.ContentSection, error)
	UpdateSection(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID, update models.SectionUpdate) (*models.ContentSection, error)
	RemoveSection(ctx context.Context, teacherID, moduleID, sectionID uuid.UUID) error
	SwapSections(ctx context.Context, teacherID, moduleID, sectionID1, sectionID2 uuid.UUID) error
	AddQuestion(ctx context.Context, teacherID uuid.UUID, question models.AssessmentQuestion) (*models.AssessmentQuestion, error)
	RemoveQuestion(ctx context.Context, teacherID, moduleID, questionID uuid.UUID) error
}

type SectionHandler struct {
	log     logger.Log
	service SectionService
}

func NewSectionHandler(l logger.Log, s SectionService) *SectionHandler {
	return &SectionHandler{
		log:     l,
		service: s,
	}
}

func sectionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("section_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section_id"})
		return uuid.Nil, false
	}
	return id, true
}

type newSectionRequest struct {
	Title    string `json:"title" binding:"required"`
	Position *int   `json:"position,omitempty"`
}

func (h *SectionHandler) CreateSection(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	var input newSectionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var section *models.ContentSection
	var err error
	if input.Position != nil {
		section, err = h.service.InsertSection(c.Request.Context(), id, moduleID, input.Title, *input.Position)
	} else {
		section, err = h.service.AppendSection(c.Request.Context(), id, moduleID, input.Title)
	}
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *SectionHandler) SectionByID(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}
	sectionID, ok := sectionIDParam(c)
	if !ok {
		return
	}

	section, err := h.service.Section(c.Request.Context(), id, moduleID, sectionID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}
	sectionID, ok := sectionIDParam(c)
	if !ok {
		return
	}

	var update models.SectionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.service.UpdateSection(c.Request.Context(), id, moduleID, sectionID, update)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}
	sectionID, ok := sectionIDParam(c)
	if !ok {
		return
	}

	if err := h.service.RemoveSection(c.Request.Context(), id, moduleID, sectionID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

type swapSectionsRequest struct {
	SectionID1 uuid.UUID `json:"section_id_1" binding:"required"`
	SectionID2 uuid.UUID `json:"section_id_2" binding:"required"`
}

func (h *SectionHandler) SwapSections(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	var input swapSectionsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SwapSections(c.Request.Context(), id, moduleID, input.SectionID1, input.SectionID2); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

type newQuestionRequest struct {
	Question      string              `json:"question" binding:"required"`
	Type          models.QuestionType `json:"type" binding:"required"`
	Options       []string            `json:"options"`
	CorrectAnswer string              `json:"correct_answer" binding:"required"`
	Points        int                 `json:"points"`
}

func (h *SectionHandler) AddQuestion(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}

	var input newQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := models.AssessmentQuestion{
		ModuleID:      moduleID,
		Question:      input.Question,
		Type:          input.Type,
		Options:       input.Options,
		CorrectAnswer: input.CorrectAnswer,
		Points:        input.Points,
	}

	created, err := h.service.AddQuestion(c.Request.Context(), id, question)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SectionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	moduleID, ok := moduleIDParam(c)
	if !ok {
		return
	}
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question_id"})
		return
	}

	if err := h.service.RemoveQuestion(c.Request.Context(), id, moduleID, questionID); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
