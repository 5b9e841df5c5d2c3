package order

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/order"
)

// ListOrdersUseCase 订单查询用例
// 卖家看自己要发的货，买家看自己买的东西
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单查询用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListBySeller 查询卖家的全部订单
func (uc *ListOrdersUseCase) ListBySeller(ctx context.Context, sellerID uint) ([]*OrderInfo, error) {
	orders, err := uc.orderRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return toOrderInfos(orders), nil
}

// ListByBuyer 查询买家的全部订单
func (uc *ListOrdersUseCase) ListByBuyer(ctx context.Context, buyerID uint) ([]*OrderInfo, error) {
	orders, err := uc.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return toOrderInfos(orders), nil
}
