package cart

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/cart"
)

// UpdateQuantityUseCase 修改购物车数量用例
type UpdateQuantityUseCase struct {
	cartService cart.Service
}

// NewUpdateQuantityUseCase 创建修改数量用例
func NewUpdateQuantityUseCase(cartService cart.Service) *UpdateQuantityUseCase {
	return &UpdateQuantityUseCase{cartService: cartService}
}

// UpdateQuantityRequest 修改数量请求
type UpdateQuantityRequest struct {
	BuyerID  uint // 从JWT中提取
	LineID   uint
	Quantity int
}

// Execute 执行修改数量
func (uc *UpdateQuantityUseCase) Execute(ctx context.Context, req UpdateQuantityRequest) (*ItemInfo, error) {
	line, err := uc.cartService.UpdateQuantity(ctx, req.BuyerID, req.LineID, req.Quantity)
	if err != nil {
		return nil, err
	}
	return toItemInfo(line), nil
}
