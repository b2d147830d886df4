package app

import (
	"quiz_grading_backend/docs"
	"quiz_grading_backend/internal/config"
	"quiz_grading_backend/internal/middleware"
	"quiz_grading_backend/internal/model"
	"quiz_grading_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(r *gin.RouterGroup, c *controllers) {
	r.POST("/quizzes/submit", c.submission.SubmitQuiz)
	r.POST("/assignments/submit", c.submission.SubmitAssignment)

	r.GET("/quizzes", c.assessment.ListQuizzes)
	r.GET("/assignments", c.assessment.ListAssignments)
	r.GET("/assessments/:id", c.assessment.GetAssessment)

	r.GET("/students/:userId/submissions", c.submission.StudentHistory)
	r.POST("/explain-answer", c.explanation.ExplainAnswer)
}

func (a *App) registerTeacherRoutes(r *gin.RouterGroup, c *controllers) {
	teacherOnly := middleware.RoleMiddleware(model.Teacher)

	r.POST("/quizzes", teacherOnly, c.assessment.CreateQuiz)
	r.POST("/assignments", teacherOnly, c.assessment.CreateAssignment)
	r.DELETE("/assessments/:id", teacherOnly, c.assessment.DeleteAssessment)

	teacher := r.Group("/teacher")
	teacher.Use(teacherOnly)
	{
		teacher.GET("/assessments/:id/submissions", c.submission.AssessmentSubmissions)
		teacher.POST("/assessments/:id/export", c.submission.ExportSubmissions)
		teacher.GET("/leaderboard", c.submission.Leaderboard)
		teacher.POST("/generate-questions/:mode", c.generation.GenerateQuestions)
	}
}
