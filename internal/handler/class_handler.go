package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpad-app/classpad-backend/internal/middleware"
	"github.com/classpad-app/classpad-backend/internal/response"
	"github.com/classpad-app/classpad-backend/internal/service"
	"github.com/classpad-app/classpad-backend/internal/validator"
)

// ClassHandler handles class creation, self-enrollment, and quiz-result
// ingestion.
type ClassHandler struct {
	classService      *service.ClassService
	enrollmentService *service.EnrollmentService
	scoringService    *service.ScoringService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, enrollmentService *service.EnrollmentService, scoringService *service.ScoringService) *ClassHandler {
	return &ClassHandler{
		classService:      classService,
		enrollmentService: enrollmentService,
		scoringService:    scoringService,
	}
}

// CreateClassRequest is the payload for creating a class section.
type CreateClassRequest struct {
	ClassName string `json:"className" binding:"required,min=1,max=100"`
	ClassIcon string `json:"classIcon" binding:"omitempty,max=50"`
	ClassDesc string `json:"classDesc" binding:"omitempty,max=500"`
	ClassHour string `json:"classHour" binding:"omitempty,max=50"`
}

// CreateClass godoc
// POST /api/v1/classes
// Creates a class section owned by the caller and fires the class-created
// event (owner summary denormalization + invite minting happen async).
func (h *ClassHandler) CreateClass(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.CreateClass(c.Request.Context(), claims.UserID, service.CreateClassInput{
		ClassName: req.ClassName,
		ClassIcon: req.ClassIcon,
		ClassDesc: req.ClassDesc,
		ClassHour: req.ClassHour,
	})
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// GetClass godoc
// GET /api/v1/classes/:class_id
func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.classService.GetClass(c.Request.Context(), c.Param("class_id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// JoinClass godoc
// POST /api/v1/classes/:class_id/join
// Enrolls the authenticated caller in the class. Domain-rule failures
// (already enrolled) come back as {res:false, result:...} with HTTP 200.
func (h *ClassHandler) JoinClass(c *gin.Context) {
	claims := middleware.GetClaims(c)

	result, err := h.enrollmentService.JoinClass(c.Request.Context(), c.Param("class_id"), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// QuizResultRequest is the payload for uploading a quiz result.
// Stars defaults to 0 when absent.
type QuizResultRequest struct {
	Stars int64 `json:"stars" binding:"omitempty,min=0"`
}

// RecordQuizResult godoc
// POST /api/v1/classes/:class_id/quiz-history
// Records a quiz-history entry for the caller and fires the quiz-submitted
// event; the caller's group score is credited async.
func (h *ClassHandler) RecordQuizResult(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req QuizResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.scoringService.RecordQuizResult(c.Request.Context(), c.Param("class_id"), claims.UserID, req.Stars)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz_result": result})
}
