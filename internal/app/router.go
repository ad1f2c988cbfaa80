package app

import (
	"courseforge_backend/docs"
	"courseforge_backend/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "CourseForge API",
			"version": "1.0.0",
		})
	})
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api/v1")
	{
		// 上传与生成
		api.POST("/upload", c.upload.Upload)
		api.GET("/upload/status/:course_id", c.upload.Status)

		// 课程
		api.GET("/courses", c.course.List)
		api.GET("/courses/:course_id", c.course.Get)
		api.GET("/courses/:course_id/toc", c.course.TableOfContents)
		api.GET("/courses/:course_id/flashcards", c.course.Flashcards)
		api.DELETE("/courses/:course_id", c.course.Delete)

		// 导出
		api.GET("/courses/:course_id/export/summary", c.export.Summary)
		api.GET("/courses/:course_id/export/flashcards", c.export.Flashcards)
		api.GET("/courses/:course_id/export/notes", c.export.Notes)

		// 进度
		api.GET("/progress/:course_id", c.progress.Get)
		api.POST("/progress/:course_id/lesson", c.progress.UpdateLesson)
		api.POST("/progress/:course_id/quiz", c.progress.UpdateQuizScore)

		// 导师
		api.POST("/tutor/:course_id/chat", c.tutor.Chat)
		api.GET("/tutor/:course_id/conversation", c.tutor.Conversation)
	}
}
