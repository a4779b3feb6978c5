package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"topicquiz/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

func (h *QuizHandler) GetTopics(c *gin.Context) {
	topics, err := h.quizService.ListTopics(c.Request.Context())
	if err != nil {
		log.Printf("[%s] Error fetching topics: %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch topics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, topics)
}

func (h *QuizHandler) GetQuestionsByTopic(c *gin.Context) {
	topic := strings.TrimSpace(c.Param("topic"))

	questions, err := h.quizService.GetQuestionsByTopic(c.Request.Context(), topic)
	if err != nil {
		var notFound *services.TopicNotFoundError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":       "Topic not found",
				"topic":       topic,
				"suggestions": notFound.Suggestions,
			})
		case errors.Is(err, services.ErrNoQuestions):
			c.JSON(http.StatusNotFound, gin.H{"error": "No questions found for this topic", "topic": topic})
		default:
			log.Printf("[%s] Error fetching questions for %q: %v", requestID(c), topic, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, questions)
}
