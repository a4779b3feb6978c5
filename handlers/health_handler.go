package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"topicquiz/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	db    *gorm.DB
	cache *services.QuestionCache
	now   func() time.Time
}

func NewHealthHandler(db *gorm.DB, cache *services.QuestionCache) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
		now:   time.Now,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"database":  h.databaseState(ctx),
		"cache":     h.cacheState(ctx),
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) databaseState(ctx context.Context) string {
	if h.db == nil {
		return "disconnected"
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "disconnected"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}

func (h *HealthHandler) cacheState(ctx context.Context) string {
	err := h.cache.Ping(ctx)
	switch {
	case errors.Is(err, services.ErrCacheDisabled):
		return "disabled"
	case err != nil:
		return "disconnected"
	default:
		return "connected"
	}
}
