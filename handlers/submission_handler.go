package handlers

import (
	"errors"
	"log"
	"net/http"

	"topicquiz/models"
	"topicquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case errors.Is(err, services.ErrNoQuestions):
			c.JSON(http.StatusNotFound, gin.H{"error": "No questions found for this topic"})
		case errors.Is(err, models.ErrInvalidQuestion):
			log.Printf("[%s] Stored question data is inconsistent: %v", requestID(c), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid question data", "details": err.Error()})
		default:
			log.Printf("[%s] Error submitting answers: %v", requestID(c), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit answers", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
