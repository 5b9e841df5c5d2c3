package cart

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/cart"
)

// ListCartUseCase 查询购物车用例
type ListCartUseCase struct {
	cartService cart.Service
}

// NewListCartUseCase 创建查询购物车用例
func NewListCartUseCase(cartService cart.Service) *ListCartUseCase {
	return &ListCartUseCase{cartService: cartService}
}

// Execute 查询买家购物车
// 图书已被删除的条目仍会返回，BookMissing标记为true
func (uc *ListCartUseCase) Execute(ctx context.Context, buyerID uint) ([]*ItemDetail, error) {
	details, err := uc.cartService.List(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	out := make([]*ItemDetail, 0, len(details))
	for _, d := range details {
		out = append(out, toItemDetail(d))
	}
	return out, nil
}
