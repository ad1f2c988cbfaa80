package util

import (
	"courseforge_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody 统一错误响应结构，错误文本放在 detail 字段
type ErrorBody struct {
	Detail string `json:"detail"`
}

func Error(c *gin.Context, code int, detail string) {
	c.JSON(code, ErrorBody{Detail: detail})
}

func BadRequest(c *gin.Context, detail string) {
	Error(c, http.StatusBadRequest, detail)
}

func NotFound(c *gin.Context, detail string) {
	Error(c, http.StatusNotFound, detail)
}

// InternalError 按边界策略把未分类异常原样回给调用方（detail 含原始错误文本），
// 同时记录到日志
func InternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	Error(c, http.StatusInternalServerError, err.Error())
}
