package controller

import (
	"courseforge_backend/internal/model"
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/service"
	"courseforge_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TutorController struct {
	Tutor      *service.TutorService
	CourseRepo *repository.CourseRepository
}

func NewTutorController(tutor *service.TutorService, courseRepo *repository.CourseRepository) *TutorController {
	return &TutorController{Tutor: tutor, CourseRepo: courseRepo}
}

type tutorMessageRequest struct {
	Message string `json:"message" binding:"required"`
	UserID  string `json:"user_id"`
}

// @Summary 向导师提问
// @Description 基于课程内容生成回复并持久化会话
// @Tags 导师
// @Accept json
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/tutor/{course_id}/chat [post]
func (c *TutorController) Chat(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	var req tutorMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = "default"
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

	reply, conv, err := c.Tutor.Chat(course, req.UserID, req.Message)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"response":        reply,
		"conversation_id": conv.ID,
	})
}

// @Summary 查询会话历史
// @Description 没有会话时返回空消息列表
// @Tags 导师
// @Produce json
// @Param course_id path int true "课程ID"
// @Param user_id query string false "用户标识"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/tutor/{course_id}/conversation [get]
func (c *TutorController) Conversation(ctx *gin.Context) {
	courseID, err := util.ParseUint(ctx.Param("course_id"))
	if err != nil {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}
	userID := ctx.DefaultQuery("user_id", "default")

	conv, err := c.Tutor.History(courseID, userID)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}
	if conv == nil {
		ctx.JSON(http.StatusOK, gin.H{"messages": []model.ChatMessage{}})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"conversation_id": conv.ID,
		"messages":        conv.Messages,
	})
}
