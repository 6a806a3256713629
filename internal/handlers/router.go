package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ouppakdigital/quiz-service/internal/services"
	"github.com/ouppakdigital/quiz-service/internal/utils"
)

type HandlerManager struct {
	questionHandler *QuestionHandler
	quizHandler     *QuizHandler
	attemptHandler  *AttemptHandler
	gradingHandler  *GradingHandler
	catalogHandler  *CatalogHandler
	adminHandler    *AdminHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		questionHandler: NewQuestionHandler(serviceManager.Question(), serviceManager.Export(), logger),
		quizHandler:     NewQuizHandler(serviceManager.Quiz(), serviceManager.Export(), logger),
		attemptHandler:  NewAttemptHandler(serviceManager.Attempt(), logger),
		gradingHandler:  NewGradingHandler(serviceManager.Grading(), serviceManager.Question(), logger),
		catalogHandler:  NewCatalogHandler(serviceManager.Catalog(), logger),
		adminHandler:    NewAdminHandler(serviceManager.Org(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Question routes
		questions := v1.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.POST("/batch", hm.questionHandler.CreateQuestionsBatch)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/export", hm.questionHandler.ExportQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.GET("/:id/details", hm.quizHandler.GetQuizWithItems)
			quizzes.GET("/:id/play", hm.quizHandler.GetQuizForPlay)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
			quizzes.GET("/:id/stats", hm.quizHandler.GetQuizStats)
			quizzes.GET("/:id/export", hm.quizHandler.ExportQuizResults)

			// Quiz question management
			quizzes.POST("/:id/questions/:question_id", hm.quizHandler.AddQuestionToQuiz)
			quizzes.DELETE("/:id/questions/:question_id", hm.quizHandler.RemoveQuestionFromQuiz)
			quizzes.PUT("/:id/questions/reorder", hm.quizHandler.ReorderQuizQuestions)
		}

		// Attempt routes
		attempts := v1.Group("/attempts")
		{
			attempts.POST("/start", hm.attemptHandler.StartAttempt)
			attempts.POST("/submit", hm.attemptHandler.SubmitAttempt)
			attempts.GET("/me", hm.attemptHandler.GetMyAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.GET("/:id/time-remaining", hm.attemptHandler.GetTimeRemaining)
			attempts.POST("/:id/timeout", hm.attemptHandler.HandleTimeout)

			// Quiz-specific routes
			attempts.GET("/quiz/:quiz_id", hm.attemptHandler.GetAttemptsByQuiz)
		}

		// Grading routes
		grading := v1.Group("/grading")
		{
			grading.POST("/calculate-score", hm.gradingHandler.CalculateScore)
			grading.POST("/evaluate", hm.gradingHandler.EvaluateAnswer)
		}

		// Catalog routes
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/chapters", hm.catalogHandler.ListChapters)
			catalog.GET("/slos", hm.catalogHandler.ListSLOs)
			catalog.GET("/books", hm.catalogHandler.ListBooks)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/schools", hm.adminHandler.CreateSchool)
			admin.GET("/schools", hm.adminHandler.ListSchools)
			admin.GET("/schools/:id", hm.adminHandler.GetSchool)
			admin.PUT("/schools/:id", hm.adminHandler.UpdateSchool)
			admin.DELETE("/schools/:id", hm.adminHandler.DeleteSchool)

			admin.POST("/campuses", hm.adminHandler.CreateCampus)
			admin.GET("/campuses", hm.adminHandler.ListCampuses)
			admin.GET("/campuses/:id", hm.adminHandler.GetCampus)
			admin.PUT("/campuses/:id", hm.adminHandler.UpdateCampus)
			admin.DELETE("/campuses/:id", hm.adminHandler.DeleteCampus)

			admin.POST("/users", hm.adminHandler.CreateUser)
			admin.GET("/users", hm.adminHandler.ListUsers)
			admin.GET("/users/:id", hm.adminHandler.GetUser)
			admin.PUT("/users/:id", hm.adminHandler.UpdateUser)
			admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)
		}
	}
}
