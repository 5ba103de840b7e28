package http

import (
	"time"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers"
	authctl "github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/auth"
	classctl "github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/class"
	editorctl "github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/editor"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/middleware"
	modulectl "github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/module"
	progressctl "github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http/controllers/progress"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	authMw := middleware.NewAuthMiddlewareProvider(l, u.AuthService)

	statusController := controllers.NewStatusHandler()
	authController := authctl.NewAuthHandler(l, u.AuthService)
	managementController := modulectl.NewManagementHandler(l, u.ModuleService)
	sectionController := modulectl.NewSectionHandler(l, u.ModuleService)
	studentController := modulectl.NewStudentHandler(l, u.ModuleService)
	editorController := editorctl.NewEditorHandler(l, u.EditorService)
	classController := classctl.NewClassHandler(l, u.ClassService)
	progressController := progressctl.NewProgressHandler(l, u.ProgressService)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authMw.AuthMiddleware, authController.Me)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", authController.Refresh)
		}

		modules := v1.Group("/modules", authMw.AuthMiddleware)
		{
			modules.GET("/search", studentController.SearchModules)

			teacher := modules.Group("", middleware.RequireRoles(models.TeacherRole, models.AdminRole))
			{
				teacher.POST("", managementController.CreateModule)
				teacher.GET("/my", managementController.MyModules)
				teacher.GET("/:module_id", managementController.ModuleByID)
				teacher.PUT("/:module_id", managementController.UpdateModule)
				teacher.DELETE("/:module_id", managementController.DeleteModule)
				teacher.PATCH("/:module_id/publish", managementController.PublishModule)
				teacher.PATCH("/:module_id/unpublish", managementController.UnpublishModule)
				teacher.POST("/:module_id/images", managementController.UploadSectionImage)

				teacher.POST("/:module_id/sections", sectionController.CreateSection)
				teacher.GET("/:module_id/sections/:section_id", sectionController.SectionByID)
				teacher.PATCH("/:module_id/sections/:section_id", sectionController.UpdateSection)
				teacher.DELETE("/:module_id/sections/:section_id", sectionController.DeleteSection)
				teacher.PATCH("/:module_id/sections/swap", sectionController.SwapSections)

				teacher.POST("/:module_id/questions", sectionController.AddQuestion)
				teacher.DELETE("/:module_id/questions/:question_id", sectionController.DeleteQuestion)
			}

			student := modules.Group("", middleware.RequireRoles(models.StudentRole))
			{
				student.GET("/:module_id/content", studentController.ModuleContent)
				student.POST("/:module_id/assessment/submit", progressController.SubmitAssessment)
				student.GET("/:module_id/assessment/result", progressController.AssessmentResult)
			}
		}

		editor := v1.Group("/editor", authMw.AuthMiddleware, middleware.RequireRoles(models.TeacherRole, models.AdminRole))
		{
			editor.POST("/sessions", editorController.Begin)
			editor.GET("/sessions/:session_id", editorController.Session)
			editor.PUT("/sessions/:session_id/content", editorController.ApplyChange)
			editor.PATCH("/sessions/:session_id/meta", editorController.UpdateMeta)
			editor.POST("/sessions/:session_id/save", editorController.Save)
			editor.DELETE("/sessions/:session_id", editorController.Cancel)
			editor.POST("/preview", editorController.Preview)
		}

		classes := v1.Group("/classes", authMw.AuthMiddleware)
		{
			teacher := classes.Group("", middleware.RequireRoles(models.TeacherRole, models.AdminRole))
			{
				teacher.POST("", classController.CreateClass)
				teacher.GET("/my", classController.MyClasses)
			}

			student := classes.Group("", middleware.RequireRoles(models.StudentRole))
			{
				student.POST("/:class_id/enroll", classController.Enroll)
				student.GET("/enrolled", classController.EnrolledClasses)
				student.GET("/:class_id/modules", studentController.ClassModules)
			}
		}
	}
	return r
}
