package cart

import (
	"context"
	"time"

	"github.com/xiebiao/bookmart/internal/domain/cart"
)

// AddItemUseCase 加入购物车用例
type AddItemUseCase struct {
	cartService cart.Service
}

// NewAddItemUseCase 创建加入购物车用例
func NewAddItemUseCase(cartService cart.Service) *AddItemUseCase {
	return &AddItemUseCase{cartService: cartService}
}

// AddItemRequest 加入购物车请求
type AddItemRequest struct {
	BuyerID  uint // 从JWT中提取
	BookID   uint
	Quantity int
}

// Execute 执行加入购物车
// 重复加入同一本书时覆盖数量
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*ItemInfo, error) {
	line, err := uc.cartService.AddItem(ctx, req.BuyerID, req.BookID, req.Quantity)
	if err != nil {
		return nil, err
	}
	return toItemInfo(line), nil
}

// =========================================
// 应用层DTO
// =========================================

// ItemInfo 购物车条目（写操作的返回，不含图书关联信息）
type ItemInfo struct {
	ID        uint   `json:"id"`
	BuyerID   uint   `json:"buyer_id"`
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	CreatedAt string `json:"created_at"`
}

// ItemDetail 购物车条目（读取视图，含图书当前信息）
type ItemDetail struct {
	ItemInfo
	Title       string `json:"title"`
	UnitPrice   int64  `json:"unit_price"` // 当前单价（分）
	Subtotal    int64  `json:"subtotal"`   // 小计（分）
	BookMissing bool   `json:"book_missing"`
}

func toItemInfo(l *cart.Line) *ItemInfo {
	return &ItemInfo{
		ID:        l.ID,
		BuyerID:   l.BuyerID,
		BookID:    l.BookID,
		Quantity:  l.Quantity,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

func toItemDetail(d *cart.Detail) *ItemDetail {
	return &ItemDetail{
		ItemInfo:    *toItemInfo(&d.Line),
		Title:       d.Title,
		UnitPrice:   d.UnitPrice,
		Subtotal:    d.Subtotal(),
		BookMissing: d.BookMissing,
	}
}
