/**
 * 处理器:通用响应
 * @date: 2026.03.15
 * @description: 统一响应信封与错误到 HTTP 状态码的映射
 * @func:
 *	1.Success 成功响应
 *	2.Fail 按错误种类映射状态码(404/400/409/401/403/500)
 *	3.BindError 请求参数绑定失败
 */
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/model"
	"backoffice/internal/model/system"
	"backoffice/internal/pkg/logger"
	"backoffice/internal/pkg/utils"
	"backoffice/internal/pkg/validate"

	"github.com/gin-gonic/gin"
)

// GinKeyError 5xx 错误写入 gin 上下文，供恢复/错误日志中间件记录
const GinKeyError = "handler_error"

// Success 成功响应
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, model.APIResponse{
		Code:    status,
		Success: true,
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// StatusOf 错误种类对应的 HTTP 状态码
func StatusOf(err error) int {
	switch {
	case errors.Is(err, system.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, system.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, system.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, system.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, system.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}

// Fail 错误响应，5xx 不向客户端暴露内部错误
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	resp := model.APIResponse{
		Code:    status,
		Success: false,
		Status:  "error",
		Message: http.StatusText(status),
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.Set(GinKeyError, err)
		logger.LogError(err, utils.GetRequestID(c), utils.GetCurrentUserID(c), c.ClientIP(), c.Request.URL.Path, c.Request.Method, nil)
		resp.Message = "服务器内部错误"
		resp.Error = "internal error"
	} else {
		resp.Message = err.Error()
		resp.Error = err.Error()
		var ve *system.ValidationError
		if errors.As(err, &ve) {
			resp.Errors = []system.ValidationError{*ve}
		}
	}
	c.JSON(status, resp)
}

// BindError 请求体或查询参数不合法，统一按 400 返回
func BindError(c *gin.Context, err error) {
	resp := model.APIResponse{
		Code:    http.StatusBadRequest,
		Success: false,
		Status:  "error",
		Message: "请求参数不合法",
		Error:   err.Error(),
	}
	if list := validate.Translate(err); len(list) > 0 {
		resp.Errors = list
		resp.Error = list[0].Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// ParseID 读取路径参数 id，不合法时已写入 400 响应
func ParseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		BindError(c, system.NewValidationError("id", "ID 不合法"))
		return 0, false
	}
	return id, true
}
