package order

import (
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrInvalidTransition 当前状态不允许此转换
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "订单状态不允许此操作")

	// ErrUnknownStatus 未定义的状态值
	ErrUnknownStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的订单状态")

	// ErrNotSellerOrder 订单不属于当前卖家
	ErrNotSellerOrder = apperrors.New(apperrors.ErrCodeForbidden, "只能操作自己的订单")
)
