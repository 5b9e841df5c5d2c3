package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAppError_Unwrap 测试错误链
func TestAppError_Unwrap(t *testing.T) {
	inner := stderrors.New("connection refused")
	wrapped := Wrap(inner, "数据库错误")

	assert.True(t, stderrors.Is(wrapped, inner), "Wrap后应能通过errors.Is找到内部错误")

	var appErr *AppError
	assert.True(t, stderrors.As(fmt.Errorf("handler: %w", wrapped), &appErr))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
}

// TestGetAppError 测试非AppError的兜底包装
func TestGetAppError(t *testing.T) {
	appErr := GetAppError(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, appErr.Code)

	appErr = GetAppError(ErrBookNotFound)
	assert.Equal(t, ErrCodeBookNotFound, appErr.Code)
}

// TestHTTPStatus 测试错误码区段到HTTP状态码的映射
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"成功", 0, http.StatusOK},
		{"未登录", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Token过期", ErrCodeTokenExpired, http.StatusUnauthorized},
		{"角色不符", ErrCodeForbidden, http.StatusForbidden},
		{"图书不存在", ErrCodeBookNotFound, http.StatusNotFound},
		{"购物车为空", ErrCodeEmptyCart, http.StatusBadRequest},
		{"悬挂引用", ErrCodeDanglingReference, http.StatusBadRequest},
		{"参数错误", ErrCodeInvalidParams, http.StatusBadRequest},
		{"邮箱已存在", ErrCodeEmailDuplicate, http.StatusConflict},
		{"内部错误", ErrCodeInternal, http.StatusInternalServerError},
		{"数据库错误", ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}
