package cart

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/cart"
)

// ClearCartUseCase 清空购物车用例
type ClearCartUseCase struct {
	cartService cart.Service
}

// NewClearCartUseCase 创建清空购物车用例
func NewClearCartUseCase(cartService cart.Service) *ClearCartUseCase {
	return &ClearCartUseCase{cartService: cartService}
}

// Execute 执行清空（幂等）
func (uc *ClearCartUseCase) Execute(ctx context.Context, buyerID uint) error {
	return uc.cartService.Clear(ctx, buyerID)
}
