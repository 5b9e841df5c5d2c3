package cart

import (
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrInvalidQuantity 数量必须>=1
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrLineNotFound 购物车条目不存在
	ErrLineNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车条目不存在")
)
