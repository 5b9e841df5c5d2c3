package cart

import (
	"context"
)

// Repository 购物车仓储接口（依赖倒置）
type Repository interface {
	// Upsert 新增或更新条目
	// (buyer_id, book_id)冲突时覆盖已有数量（替换策略，不累加）
	Upsert(ctx context.Context, line *Line) error

	// FindByBuyer 查询买家的全部条目（含关联的图书信息，按创建时间倒序）
	// 排序只是插入顺序的副产品，调用方不得依赖它保证正确性
	FindByBuyer(ctx context.Context, buyerID uint) ([]*Detail, error)

	// FindByID 根据条目ID查找
	FindByID(ctx context.Context, id uint) (*Line, error)

	// UpdateQuantity 更新条目数量
	UpdateQuantity(ctx context.Context, id uint, quantity int) (*Line, error)

	// Remove 删除单个条目（幂等，条目不存在不报错）
	Remove(ctx context.Context, id uint) error

	// Clear 清空买家购物车（幂等）
	Clear(ctx context.Context, buyerID uint) error
}
