package routes

import (
	"log"
	"net/http"
	"strings"

	"topicquiz/handlers"
	"topicquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handlers struct {
	Quiz       *handlers.QuizHandler
	Submission *handlers.SubmissionHandler
	Health     *handlers.HealthHandler
	Hub        *services.Hub
}

func SetupRoutes(router *gin.Engine, h Handlers, allowedOrigin string) {
	router.GET("/health", h.Health.Health)
	router.GET("/topics", h.Quiz.GetTopics)
	router.GET("/questions/:topic", h.Quiz.GetQuestionsByTopic)
	router.POST("/submit", h.Submission.Submit)

	if h.Hub != nil {
		router.GET("/ws/submissions/:topic", submissionFeed(h.Hub, allowedOrigin))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}

// submissionFeed upgrades the request and subscribes it to scored
// submissions for the topic in the path.
func submissionFeed(hub *services.Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || strings.EqualFold(origin, allowedOrigin)
		},
	}

	return func(c *gin.Context) {
		topic := strings.TrimSpace(c.Param("topic"))
		if topic == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Topic required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already written an HTTP error response.
			log.Printf("WebSocket upgrade failed for topic %s: %v", topic, err)
			return
		}

		hub.RegisterClient(conn, topic)
	}
}
