package handlers

import (
	"topicquiz/middleware"

	"github.com/gin-gonic/gin"
)

func requestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}
