package controller

import (
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseController(courseRepo *repository.CourseRepository) *CourseController {
	return &CourseController{CourseRepo: courseRepo}
}

type courseListItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceType  string `json:"source_type"`
	CreatedAt   string `json:"created_at"`
	ModuleCount int    `json:"module_count"`
}

// @Summary 课程列表
// @Description 按创建时间倒序返回全部课程及模块数量
// @Tags 课程
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseRepo.List()
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	items := make([]courseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, courseListItem{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			SourceType:  course.SourceType,
			CreatedAt:   course.CreatedAt.Format(time.RFC3339),
			ModuleCount: len(course.Modules),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"courses": items})
}

// @Summary 课程详情
// @Description 返回完整课程树：模块、课时、测验、闪卡
// @Tags 课程
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/courses/{course_id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	course, err := c.CourseRepo.Get(courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			util.NotFound(ctx, util.ErrCourseNotFound.Error())
			return
		}
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// @Summary 课程目录
// @Tags 课程
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/courses/{course_id}/toc [get]
func (c *CourseController) TableOfContents(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	course, err := c.CourseRepo.GetRow(courseID)
	if err != nil {
		if repository.IsNotFound(err) {
			util.NotFound(ctx, util.ErrCourseNotFound.Error())
			return
		}
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"course_id":         course.ID,
		"title":             course.Title,
		"table_of_contents": course.TableOfContents,
	})
}

// @Summary 课程闪卡
// @Tags 课程
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/courses/{course_id}/flashcards [get]
func (c *CourseController) Flashcards(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, gin.H{"flashcards": flashcards})
}

// @Summary 删除课程
// @Description 级联删除课程及其模块、课时、测验、闪卡、进度和会话
// @Tags 课程
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/courses/{course_id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	if err := c.CourseRepo.Delete(courseID); err != nil {
		if repository.IsNotFound(err) {
			util.NotFound(ctx, util.ErrCourseNotFound.Error())
			return
		}
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Course deleted"})
}
