package main

import (
	"log"

	"quizapi/config"
	"quizapi/handlers"
	"quizapi/middleware"
	"quizapi/models"
	"quizapi/routes"
	"quizapi/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.Category{},
		&models.QuizQuestion{},
		&models.QuestionCategory{},
		&models.QuizResult{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)
	resultCache := services.NewRedisCache(redisClient)

	// Initialize services
	authService := services.NewAuthService(cfg.AuthDomain, cfg.AuthAudience,
		cfg.AuthClientID, cfg.AuthClientSecret, cfg.AuthConnection)
	quizService := services.NewQuizService(db)
	questionService := services.NewQuestionService(db)
	categoryService := services.NewCategoryService(db)
	resultService := services.NewResultService(db, resultCache, cfg.ExportDir)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	resultHandler := handlers.NewResultHandler(resultService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, quizHandler, questionHandler,
		categoryHandler, resultHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
