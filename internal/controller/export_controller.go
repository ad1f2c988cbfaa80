package controller

import (
	"courseforge_backend/internal/model"
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/service"
	"courseforge_backend/internal/util"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	CourseRepo *repository.CourseRepository
	Exporter   *service.ExportService
}

func NewExportController(courseRepo *repository.CourseRepository, exporter *service.ExportService) *ExportController {
	return &ExportController{CourseRepo: courseRepo, Exporter: exporter}
}

// @Summary 导出课程摘要
// @Tags 导出
// @Produce plain
// @Param course_id path int true "课程ID"
// @Success 200 {string} string
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/courses/{course_id}/export/summary [get]
func (c *ExportController) Summary(ctx *gin.Context) {
	course, ok := c.loadCourse(ctx)
	if !ok {
		return
	}

	content := c.Exporter.Summary(course)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=course_%d_summary.txt", course.ID))
	ctx.Data(http.StatusOK, "text/plain", []byte(content))
}

// @Summary 导出闪卡
// @Description format 取 csv 或 json，默认 json
// @Tags 导出
// @Produce json
// @Param course_id path int true "课程ID"
// @Param format query string false "导出格式"
// @Success 200 {string} string
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/courses/{course_id}/export/flashcards [get]
func (c *ExportController) Flashcards(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	if _, err := c.CourseRepo.GetRow(courseID); err != nil {
		if repository.IsNotFound(err) {
			util.NotFound(ctx, util.ErrCourseNotFound.Error())
			return
		}
		util.InternalError(ctx, err)
		return
	}

	flashcards, err := c.CourseRepo.GetFlashcards(courseID)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	if ctx.DefaultQuery("format", "json") == "csv" {
		content, err := c.Exporter.FlashcardsCSV(flashcards)
		if err != nil {
			util.InternalError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=course_%d_flashcards.csv", courseID))
		ctx.Data(http.StatusOK, "text/csv", []byte(content))
		return
	}

	content, err := c.Exporter.FlashcardsJSON(flashcards)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=course_%d_flashcards.json", courseID))
	ctx.Data(http.StatusOK, "application/json", []byte(content))
}

// @Summary 导出课程笔记
// @Tags 导出
// @Produce plain
// @Param course_id path int true "课程ID"
// @Success 200 {string} string
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/courses/{course_id}/export/notes [get]
func (c *ExportController) Notes(ctx *gin.Context) {
	course, ok := c.loadCourse(ctx)
	if !ok {
		return
	}

	content := c.Exporter.Notes(course)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=course_%d_notes.md", course.ID))
	ctx.Data(http.StatusOK, "text/markdown", []byte(content))
}

// loadCourse 取完整课程树，缺失时写好响应并返回 false
func (c *ExportController) loadCourse(ctx *gin.Context) (*model.Course, bool) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return nil, false
	}

	course, err := c.CourseRepo.Get(courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			util.NotFound(ctx, util.ErrCourseNotFound.Error())
			return nil, false
		}
		util.InternalError(ctx, err)
		return nil, false
	}
	return course, true
}
