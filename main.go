package main

import (
	"log"

	"topicquiz/config"
	"topicquiz/handlers"
	"topicquiz/middleware"
	"topicquiz/models"
	"topicquiz/routes"
	"topicquiz/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	cache := services.NewQuestionCache(config.InitRedis(cfg), cfg.CacheTTL)
	log.Printf("Question cache: %s", cache)

	// Initialize services
	hub := services.NewHub()
	go hub.Run()

	quizService := services.NewQuizService(db, cache)
	submissionService := services.NewSubmissionService(db, quizService, hub, cfg.RevealAnswers)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery(), middleware.RequestID(), middleware.CORS(cfg.CORSOrigin))

	routes.SetupRoutes(router, routes.Handlers{
		Quiz:       handlers.NewQuizHandler(quizService),
		Submission: handlers.NewSubmissionHandler(submissionService),
		Health:     handlers.NewHealthHandler(db, cache),
		Hub:        hub,
	}, cfg.CORSOrigin)

	// Start server
	log.Printf("Server starting on %s", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
