package order

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookmart/internal/domain/cart"
	"github.com/xiebiao/bookmart/internal/domain/order"
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// TxManager 事务边界接口
// 应用层只声明"需要一个事务"，具体实现由infrastructure层提供，
// 单元测试里用直通的假实现即可
type TxManager interface {
	// Transaction 在事务中执行fn，fn返回错误时整体回滚
	Transaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// CheckoutLock 结算互斥锁
// 同一买家同时只允许一个结算在进行，防止购物车被并发结算两次
type CheckoutLock interface {
	// Acquire 获取买家结算锁，已被占用时返回ErrCheckoutBusy
	// 成功时返回释放函数
	Acquire(ctx context.Context, buyerID uint) (release func(), err error)
}

// EventPublisher 订单事件发布接口
// MQ不可用时的失败不影响结算结果
type EventPublisher interface {
	OrderCreated(ctx context.Context, o *order.Order)
	OrderStatusChanged(ctx context.Context, o *order.Order)
}

// 结算相关错误
var (
	// ErrEmptyCart 购物车为空无法结算
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空")

	// ErrCheckoutBusy 同一买家的结算正在进行中
	ErrCheckoutBusy = apperrors.New(apperrors.ErrCodeCheckoutBusy, "结算正在进行中，请稍后再试")
)

// CheckoutUseCase 结算用例
// 设计说明：
// 1. 购物车每个条目生成一个独立订单（不同卖家的货各自发货）
// 2. 单价取自购物车的联查结果，即买家在购物车里看到的价格，
//    不在生成订单时重新读图书，也不信任前端传值
// 3. 读购物车、创建全部订单、清空购物车在同一个事务里，要么全成功要么全失败
// 4. 条目引用的图书已被删除时整单失败，购物车保持原样
type CheckoutUseCase struct {
	cartRepo  cart.Repository
	orderRepo order.Repository
	txManager TxManager
	lock      CheckoutLock
	publisher EventPublisher
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	orderRepo order.Repository,
	txManager TxManager,
	lock CheckoutLock,
	publisher EventPublisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		txManager: txManager,
		lock:      lock,
		publisher: publisher,
	}
}

// Execute 执行结算
func (uc *CheckoutUseCase) Execute(ctx context.Context, buyerID uint) ([]*OrderInfo, error) {
	// 1. 买家级互斥，防止同一购物车并发结算
	release, err := uc.lock.Acquire(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	defer release()

	// 2. 事务内：读取购物车（含图书联查字段），逐条生成订单，最后清空购物车
	var created []*order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		created = created[:0]

		lines, err := uc.cartRepo.FindByBuyer(txCtx, buyerID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		for _, line := range lines {
			// 图书已被删除的悬挂条目让整个事务回滚
			if line.BookMissing {
				return apperrors.Newf(apperrors.ErrCodeDanglingReference,
					"购物车中的图书(id=%d)已下架，请先移除该条目", line.BookID)
			}

			o := order.NewOrder(buyerID, line.SellerID, line.BookID, line.Quantity, line.Subtotal())
			if err := uc.orderRepo.Create(txCtx, o); err != nil {
				return err
			}
			created = append(created, o)
		}

		return uc.cartRepo.Clear(txCtx, buyerID)
	})
	if err != nil {
		return nil, err
	}

	// 4. 事务提交后发布事件（失败只记日志，不回滚订单）
	for _, o := range created {
		uc.publisher.OrderCreated(ctx, o)
	}

	out := make([]*OrderInfo, 0, len(created))
	for _, o := range created {
		out = append(out, toOrderInfo(o))
	}
	return out, nil
}

// =========================================
// 应用层DTO
// =========================================

// OrderInfo 订单信息
type OrderInfo struct {
	ID         uint   `json:"id"`
	BuyerID    uint   `json:"buyer_id"`
	SellerID   uint   `json:"seller_id"`
	BookID     uint   `json:"book_id"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"total_price"` // 下单时的总价（分）
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toOrderInfo(o *order.Order) *OrderInfo {
	return &OrderInfo{
		ID:         o.ID,
		BuyerID:    o.BuyerID,
		SellerID:   o.SellerID,
		BookID:     o.BookID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     o.Status.String(),
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  o.UpdatedAt.Format(time.RFC3339),
	}
}

func toOrderInfos(orders []*order.Order) []*OrderInfo {
	out := make([]*OrderInfo, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderInfo(o))
	}
	return out
}

// NoopPublisher 不发布任何事件的实现（MQ未配置时使用）
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(_ context.Context, o *order.Order) {
	log.Printf("[INFO] order created: id=%d buyer=%d seller=%d", o.ID, o.BuyerID, o.SellerID)
}

func (NoopPublisher) OrderStatusChanged(_ context.Context, o *order.Order) {
	log.Printf("[INFO] order status changed: id=%d status=%s", o.ID, o.Status)
}
