package controller

import (
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/service"
	"courseforge_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress   *service.ProgressService
	CourseRepo *repository.CourseRepository
}

func NewProgressController(progress *service.ProgressService, courseRepo *repository.CourseRepository) *ProgressController {
	return &ProgressController{Progress: progress, CourseRepo: courseRepo}
}

type lessonProgressRequest struct {
	LessonID  uint   `json:"lesson_id" binding:"required"`
	Completed bool   `json:"completed"`
	UserID    string `json:"user_id"`
}

type quizScoreRequest struct {
	QuizID uint    `json:"quiz_id" binding:"required"`
	Score  float64 `json:"score"`
	UserID string  `json:"user_id"`
}

// @Summary 查询学习进度
// @Description 首次访问会为该用户落一条零值进度
// @Tags 进度
// @Produce json
// @Param course_id path int true "课程ID"
// @Param user_id query string false "用户标识"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/progress/{course_id} [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}
	userID := ctx.DefaultQuery("user_id", "default")

	if _, err := c.CourseRepo.GetRow(courseID); err != nil {
		if repository.IsNotFound(err) {
			util.NotFound(ctx, util.ErrCourseNotFound.Error())
			return
		}
		util.InternalError(ctx, err)
		return
	}

	progress, err := c.Progress.Get(courseID, userID)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"course_id":         courseID,
		"user_id":           userID,
		"current_module_id": progress.CurrentModuleID,
		"current_lesson_id": progress.CurrentLessonID,
		"completed_lessons": progress.CompletedLessons,
		"quiz_scores":       progress.QuizScores,
		"overall_progress":  progress.OverallProgress,
	})
}

// @Summary 更新课时完成状态
// @Description completed 为真加入完成集合，为假移出，重复提交不产生重复项
// @Tags 进度
// @Accept json
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorBody
// @Router /api/v1/progress/{course_id}/lesson [post]
func (c *ProgressController) UpdateLesson(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	var req lessonProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = "default"
	}

	progress, err := c.Progress.SetLessonCompleted(courseID, req.UserID, req.LessonID, req.Completed)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":           true,
		"completed_lessons": progress.CompletedLessons,
		"overall_progress":  progress.OverallProgress,
	})
}

// @Summary 记录测验得分
// @Description 同一测验再次提交覆盖旧分数
// @Tags 进度
// @Accept json
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorBody
// @Router /api/v1/progress/{course_id}/quiz [post]
func (c *ProgressController) UpdateQuizScore(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	var req quizScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = "default"
	}

	progress, err := c.Progress.RecordQuizScore(courseID, req.UserID, req.QuizID, req.Score)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"quiz_scores": progress.QuizScores,
	})
}
