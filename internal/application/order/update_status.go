package order

import (
	"context"

	"github.com/xiebiao/bookmart/internal/domain/order"
)

// UpdateStatusUseCase 更新订单状态用例
// 业务规则：只有订单的卖家可以推进状态，转换必须符合状态机
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	publisher EventPublisher
}

// NewUpdateStatusUseCase 创建更新状态用例
func NewUpdateStatusUseCase(orderRepo order.Repository, publisher EventPublisher) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// UpdateStatusRequest 更新状态请求
type UpdateStatusRequest struct {
	OrderID  uint
	SellerID uint   // 从JWT中提取
	Status   string // pending/shipped/delivered/cancelled
}

// Execute 执行状态更新
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*OrderInfo, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBySeller(req.SellerID) {
		return nil, order.ErrNotSellerOrder
	}

	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	uc.publisher.OrderStatusChanged(ctx, o)
	return toOrderInfo(o), nil
}
