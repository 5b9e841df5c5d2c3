package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// 统一响应辅助
// 设计说明：
// 1. 成功响应直接返回业务数据（如 {"books": [...]}），状态码由调用方指定
// 2. 错误响应统一为 {"error": <消息>, "code": <业务码>}
//    code字段供客户端分支判断，error字段供直接展示
// 3. 内部错误只记录日志，不泄露给客户端

// ErrorBody 错误响应体
type ErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// OK 200成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误记录到服务端日志，客户端只看到友好提示
	if appErr.Err != nil {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}

	c.JSON(apperrors.HTTPStatus(appErr.Code), ErrorBody{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error: message,
		Code:  apperrors.ErrCodeInvalidParams,
	})
}

// AbortWithError 中间件用的错误响应（终止后续Handler）
func AbortWithError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Code), ErrorBody{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}
