package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizapi/handlers"
	"quizapi/middleware"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	categoryHandler *handlers.CategoryHandler,
	resultHandler *handlers.ResultHandler,
	jwtSecret string,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Authenticated routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			// End-user surface
			user := protected.Group("/")
			user.Use(middleware.RequireRole("user"))
			{
				quizzes := user.Group("/quizzes")
				{
					quizzes.GET("", quizHandler.GetActiveQuizzes)
					quizzes.GET("/:id", quizHandler.GetQuiz)
					quizzes.GET("/:id/questions", quizHandler.GetQuizQuestionsForUser)
					quizzes.POST("/:id/user-answers", resultHandler.SubmitAnswers)
				}

				results := user.Group("/results")
				{
					results.GET("", resultHandler.ListResults)
					results.GET("/:id", resultHandler.GetResult)
				}
			}

			// Admin surface
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				quizzes := admin.Group("/quizzes")
				{
					quizzes.GET("", quizHandler.GetQuizzes)
					quizzes.POST("", quizHandler.CreateQuiz)
					quizzes.GET("/:id", quizHandler.GetQuiz)
					quizzes.PATCH("/:id", quizHandler.UpdateQuiz)
					quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
					quizzes.GET("/:id/questions", quizHandler.GetQuizQuestions)
					quizzes.POST("/:id/questions", quizHandler.AddQuizQuestions)
					quizzes.DELETE("/:id/questions/:questionId", quizHandler.DeleteQuizQuestion)
				}

				questions := admin.Group("/questions")
				{
					questions.GET("", questionHandler.GetQuestions)
					questions.POST("", questionHandler.CreateQuestion)
					questions.GET("/:id", questionHandler.GetQuestion)
					questions.PATCH("/:id", questionHandler.UpdateQuestion)
					questions.DELETE("/:id", questionHandler.DeleteQuestion)
					questions.POST("/:id/answers", questionHandler.AddAnswer)
					questions.PATCH("/:id/answers/:answerId", questionHandler.UpdateAnswer)
					questions.DELETE("/:id/answers/:answerId", questionHandler.DeleteAnswer)
					questions.POST("/:id/categories/:categoryId", questionHandler.AddQuestionCategory)
					questions.DELETE("/:id/categories/:categoryId", questionHandler.DeleteQuestionCategory)
				}

				categories := admin.Group("/categories")
				{
					categories.GET("", categoryHandler.GetCategories)
					categories.POST("", categoryHandler.CreateCategory)
					categories.PATCH("/:id", categoryHandler.UpdateCategory)
					categories.DELETE("/:id", categoryHandler.DeleteCategory)
				}

				results := admin.Group("/results")
				{
					results.GET("", resultHandler.ListResults)
					results.GET("/:id", resultHandler.GetResult)
					results.GET("/:id/details", resultHandler.GetResultDetails)
				}
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
