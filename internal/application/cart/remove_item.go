package cart

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/cart"
)

// RemoveItemUseCase 移除购物车条目用例
type RemoveItemUseCase struct {
	cartService cart.Service
}

// NewRemoveItemUseCase 创建移除条目用例
func NewRemoveItemUseCase(cartService cart.Service) *RemoveItemUseCase {
	return &RemoveItemUseCase{cartService: cartService}
}

// Execute 执行移除（幂等）
func (uc *RemoveItemUseCase) Execute(ctx context.Context, buyerID, lineID uint) error {
	return uc.cartService.RemoveItem(ctx, buyerID, lineID)
}
