package routes

import (
	"context"
	"log"

	"examportal/backend/config"
	"examportal/backend/controllers"
	"examportal/backend/middleware"
	"examportal/backend/models"

	_ "examportal/backend/docs"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"gorm.io/gorm"
)

const Version = "1.0.0"

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// SetupRoutes registers every endpoint. limiter may be nil, which disables login throttling.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger, limiter middleware.AttemptLimiter) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Exam Priority Portal API", "version": Version})
	})
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "Server is running"}
		if hc, ok := limiter.(healthChecker); ok {
			body["cache"] = "ok"
			if err := hc.HealthCheck(c.UserContext()); err != nil {
				logger.Printf("cache health check failed: %v", err)
				body["cache"] = "unavailable"
			}
		}
		return c.JSON(body)
	})

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	studentOnly := middleware.RequireRole(models.RoleStudent)
	loginLimit := middleware.LoginRateLimit(limiter, logger)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, logger)
	auth := api.Group("/auth")
	auth.Post("/student/register", authController.RegisterStudent)
	auth.Post("/student/login", loginLimit, authController.LoginStudent)
	auth.Post("/admin/login", loginLimit, authController.LoginAdmin)
	auth.Get("/profile", authMiddleware, authController.GetProfile)
	auth.Put("/profile", authMiddleware, authController.UpdateProfile)

	// Curriculum routes: reads are public
	curriculumController := controllers.NewCurriculumController(db, cfg, logger)
	api.Get("/exams", curriculumController.GetExams)
	api.Get("/exams/:id", curriculumController.GetExam)
	api.Post("/exams", authMiddleware, adminOnly, curriculumController.CreateExam)
	api.Put("/exams/:id", authMiddleware, adminOnly, curriculumController.UpdateExam)
	api.Delete("/exams/:id", authMiddleware, adminOnly, curriculumController.DeleteExam)

	api.Get("/exams/:examId/subjects", curriculumController.GetSubjectsByExam)
	api.Post("/subjects", authMiddleware, adminOnly, curriculumController.CreateSubject)
	api.Put("/subjects/:id", authMiddleware, adminOnly, curriculumController.UpdateSubject)
	api.Delete("/subjects/:id", authMiddleware, adminOnly, curriculumController.DeleteSubject)

	api.Get("/subjects/:subjectId/topics", curriculumController.GetTopicsBySubject)
	api.Get("/subjects/:subjectId/topics/filtered", curriculumController.GetPriorityTopics)
	api.Get("/topics/:id", curriculumController.GetTopic)
	api.Post("/topics", authMiddleware, adminOnly, curriculumController.CreateTopic)
	api.Put("/topics/:id", authMiddleware, adminOnly, curriculumController.UpdateTopic)
	api.Delete("/topics/:id", authMiddleware, adminOnly, curriculumController.DeleteTopic)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg, logger)
	api.Get("/quiz/:topicId", quizController.GetQuizByTopic)
	api.Post("/quiz", authMiddleware, adminOnly, quizController.CreateQuiz)
	api.Put("/quiz/:id", authMiddleware, adminOnly, quizController.UpdateQuiz)
	api.Delete("/quiz/:id", authMiddleware, adminOnly, quizController.DeleteQuiz)
	api.Post("/quiz/:id/submit", authMiddleware, quizController.SubmitQuiz)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg, logger)
	api.Get("/progress", authMiddleware, studentOnly, progressController.GetProgress)
	api.Get("/progress/:studentId", authMiddleware, progressController.GetProgress)
	api.Post("/mark-complete/:studentId/:topicId", authMiddleware,
		middleware.RequireRole(models.RoleStudent, models.RoleAdmin), progressController.MarkComplete)
	api.Post("/quiz-attempt/:topicId", authMiddleware, progressController.RecordQuizAttempt)
	api.Post("/target-exam", authMiddleware, studentOnly, progressController.SetTargetExam)

	// Admin routes for students
	studentController := controllers.NewStudentController(db, cfg, logger)
	students := api.Group("/students", authMiddleware, adminOnly)
	students.Get("/", studentController.GetStudents)
	students.Get("/export", studentController.ExportStudents)
	students.Put("/:studentId/block", studentController.BlockStudent)
	students.Put("/:studentId/unblock", studentController.UnblockStudent)
	students.Delete("/:studentId", studentController.DeleteStudent)
}
