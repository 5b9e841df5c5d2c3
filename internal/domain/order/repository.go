package order

import (
	"context"
)

// Repository 订单仓储接口（依赖倒置）
type Repository interface {
	// Create 创建订单
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindBySeller 查询卖家的全部订单（按创建时间倒序）
	FindBySeller(ctx context.Context, sellerID uint) ([]*Order, error)

	// FindByBuyer 查询买家的全部订单（按创建时间倒序）
	FindByBuyer(ctx context.Context, buyerID uint) ([]*Order, error)

	// Update 保存订单变更（目前只有状态会变）
	Update(ctx context.Context, order *Order) error
}
