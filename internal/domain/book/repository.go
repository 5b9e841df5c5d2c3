package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置）
// 由domain层定义接口，infrastructure层实现，便于Mock测试
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindBySeller 查询某卖家的全部图书（按创建时间倒序）
	FindBySeller(ctx context.Context, sellerID uint) ([]*Book, error)

	// FindAll 查询全部在售图书（按创建时间倒序）
	FindAll(ctx context.Context) ([]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书（软删除）
	// 有订单或购物车引用时不阻止删除，悬挂引用由结算流程识别
	Delete(ctx context.Context, id uint) error
}
