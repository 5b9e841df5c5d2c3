package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookmart/internal/domain/cart"
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Upsert 新增或更新条目
// 依赖(buyer_id, book_id)唯一索引，冲突时覆盖quantity
// 等价SQL：INSERT ... ON DUPLICATE KEY UPDATE quantity = ?
func (r *cartRepository) Upsert(ctx context.Context, line *cart.Line) error {
	model := &CartItemModel{
		BuyerID:  line.BuyerID,
		BookID:   line.BookID,
		Quantity: line.Quantity,
	}

	// 写入与回读放在同一事务，避免并发删除让回读落空
	return getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "buyer_id"}, {Name: "book_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": line.Quantity,
				}),
			}).
			Create(model).Error
		if err != nil {
			return apperrors.Wrap(err, "写入购物车失败")
		}

		// 冲突更新时Create不回填已有行的ID，重查一次拿权威数据
		var saved CartItemModel
		err = tx.
			Where("buyer_id = ? AND book_id = ?", line.BuyerID, line.BookID).
			First(&saved).Error
		if err != nil {
			return apperrors.Wrap(err, "读取购物车条目失败")
		}

		line.ID = saved.ID
		line.Quantity = saved.Quantity
		line.CreatedAt = saved.CreatedAt
		return nil
	})
}

// cartDetailRow LEFT JOIN查询的扫描目标
type cartDetailRow struct {
	ID          uint
	BuyerID     uint
	BookID      uint
	Quantity    int
	CreatedAt   time.Time
	Title       string
	UnitPrice   int64
	SellerID    uint
	BookMissing bool
}

// FindByBuyer 查询买家购物车（关联图书当前信息）
// LEFT JOIN保证图书已被删除的条目不会凭空消失，BookMissing标记为true
func (r *cartRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]*cart.Detail, error) {
	var rows []cartDetailRow
	err := getDB(ctx, r.db).
		Table("cart_items").
		Select("cart_items.id, cart_items.buyer_id, cart_items.book_id, cart_items.quantity, cart_items.created_at, " +
			"COALESCE(books.title, '') AS title, " +
			"COALESCE(books.price, 0) AS unit_price, " +
			"COALESCE(books.seller_id, 0) AS seller_id, " +
			"(books.id IS NULL) AS book_missing").
		Joins("LEFT JOIN books ON books.id = cart_items.book_id AND books.deleted_at IS NULL").
		Where("cart_items.buyer_id = ?", buyerID).
		Order("cart_items.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	details := make([]*cart.Detail, len(rows))
	for i, row := range rows {
		details[i] = &cart.Detail{
			Line: cart.Line{
				ID:        row.ID,
				BuyerID:   row.BuyerID,
				BookID:    row.BookID,
				Quantity:  row.Quantity,
				CreatedAt: row.CreatedAt,
			},
			Title:       row.Title,
			UnitPrice:   row.UnitPrice,
			SellerID:    row.SellerID,
			BookMissing: row.BookMissing,
		}
	}
	return details, nil
}

// FindByID 根据条目ID查找
func (r *cartRepository) FindByID(ctx context.Context, id uint) (*cart.Line, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrLineNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	return toCartLine(&model), nil
}

// UpdateQuantity 更新条目数量
func (r *cartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) (*cart.Line, error) {
	result := getDB(ctx, r.db).
		Model(&CartItemModel{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "更新购物车数量失败")
	}
	if result.RowsAffected == 0 {
		return nil, cart.ErrLineNotFound
	}
	return r.FindByID(ctx, id)
}

// Remove 删除单个条目（幂等）
func (r *cartRepository) Remove(ctx context.Context, id uint) error {
	if err := getDB(ctx, r.db).Delete(&CartItemModel{}, id).Error; err != nil {
		return apperrors.Wrap(err, "删除购物车条目失败")
	}
	return nil
}

// Clear 清空买家购物车（幂等）
func (r *cartRepository) Clear(ctx context.Context, buyerID uint) error {
	err := getDB(ctx, r.db).
		Where("buyer_id = ?", buyerID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// toCartLine GORM模型 → 领域实体
func toCartLine(model *CartItemModel) *cart.Line {
	return &cart.Line{
		ID:        model.ID,
		BuyerID:   model.BuyerID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
	}
}
