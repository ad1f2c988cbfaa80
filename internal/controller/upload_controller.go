package controller

import (
	"courseforge_backend/internal/repository"
	"courseforge_backend/internal/service"
	"courseforge_backend/internal/util"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadController struct {
	Storage    *service.StorageService
	Processor  *service.FileProcessor
	Generator  *service.CourseGenerator
	CourseRepo *repository.CourseRepository
}

func NewUploadController(storage *service.StorageService, processor *service.FileProcessor, generator *service.CourseGenerator, courseRepo *repository.CourseRepository) *UploadController {
	return &UploadController{
		Storage:    storage,
		Processor:  processor,
		Generator:  generator,
		CourseRepo: courseRepo,
	}
}

// @Summary 上传素材生成课程
// @Description 接收文件、文本或链接，提取内容后生成并保存课程
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "素材文件"
// @Param text formData string false "原始文本"
// @Param link formData string false "网页链接"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorBody
// @Router /api/v1/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	var (
		contentText    string
		sourceType     string
		sourceFilePath string
	)

	file, fileErr := ctx.FormFile("file")
	text := ctx.PostForm("text")
	link := ctx.PostForm("link")

	switch {
	case fileErr == nil && file != nil:
		filename := uuid.New().String() + filepath.Ext(file.Filename)
		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			// 客户端没报类型时从文件头嗅探
			if probe, err := file.Open(); err == nil {
				contentType, _ = util.DetectMimeType(probe)
				probe.Close()
			}
		}

		src, err := file.Open()
		if err != nil {
			c.uploadFailed(ctx, err)
			return
		}
		localPath, err := c.Storage.StashUpload(ctx.Request.Context(), filename, src, contentType)
		src.Close()
		if err != nil {
			c.uploadFailed(ctx, err)
			return
		}

		extracted, err := c.Processor.ProcessFile(localPath, contentType)
		if err != nil {
			c.uploadFailed(ctx, err)
			return
		}
		contentText = extracted
		sourceType = c.Processor.SourceTypeOf(contentType)
		sourceFilePath = localPath

	case text != "":
		contentText = text
		sourceType = util.SourceText

	case link != "":
		contentText = c.Processor.ProcessLink(link)
		sourceType = util.SourceLink

	default:
		util.BadRequest(ctx, util.ErrNoInput.Error())
		return
	}

	doc := c.Generator.Generate(contentText, sourceType)

	course, err := c.Generator.SaveCourse(doc, sourceType, contentText, sourceFilePath)
	if err != nil {
		c.uploadFailed(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"course_id": course.ID,
		"title":     course.Title,
		"message":   "Course generated successfully",
	})
}

// @Summary 查询课程生成状态
// @Description 课程已有模块即视为生成完成
// @Tags 上传
// @Produce json
// @Param course_id path int true "课程ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorBody
// @Router /api/v1/upload/status/{course_id} [get]
func (c *UploadController) Status(ctx *gin.Context) {
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

	hasModules, err := c.CourseRepo.HasModules(courseID)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	status := "processing"
	if hasModules {
		status = "completed"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"course_id": course.ID,
		"title":     course.Title,
		"status":    status,
	})
}

func (c *UploadController) uploadFailed(ctx *gin.Context, err error) {
	util.InternalError(ctx, fmt.Errorf("Error processing upload: %v", err))
}
