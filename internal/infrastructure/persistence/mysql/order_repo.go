package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmart/internal/domain/order"
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := &OrderModel{
		BuyerID:    o.BuyerID,
		SellerID:   o.SellerID,
		BookID:     o.BookID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     int(o.Status),
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找订单
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindBySeller 查询卖家的全部订单
func (r *orderRepository) FindBySeller(ctx context.Context, sellerID uint) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询卖家订单失败")
	}
	return toOrderEntities(models), nil
}

// FindByBuyer 查询买家的全部订单
func (r *orderRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询买家订单失败")
	}
	return toOrderEntities(models), nil
}

// Update 保存订单变更
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	result := getDB(ctx, r.db).
		Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Update("status", int(o.Status))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	return &order.Order{
		ID:         model.ID,
		BuyerID:    model.BuyerID,
		SellerID:   model.SellerID,
		BookID:     model.BookID,
		Quantity:   model.Quantity,
		TotalPrice: model.TotalPrice,
		Status:     order.Status(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}
