package cart

import (
	"time"
)

// Line 购物车条目实体
// 设计说明：
// 1. 每个买家对同一本图书至多一条记录，(buyer_id, book_id)唯一
// 2. 只保存BookID与数量，价格/书名在读取时实时关联（不做存储快照）
// 3. 结算时整个购物车被转换为订单并清空
type Line struct {
	ID        uint
	BuyerID   uint
	BookID    uint
	Quantity  int // 必须>=1
	CreatedAt time.Time
}

// Detail 购物车条目的读取视图
// 读取时LEFT JOIN图书表得到当前书名/价格/卖家：
// 图书已被删除的条目BookMissing为true，其余关联字段为零值，
// 这样悬挂引用不会在列表里凭空消失，而是在结算时被显式报出
type Detail struct {
	Line
	Title       string // 当前书名
	UnitPrice   int64  // 当前单价（分）
	SellerID    uint   // 图书归属卖家
	BookMissing bool   // 图书已不存在
}

// Subtotal 条目小计（分）
func (d *Detail) Subtotal() int64 {
	return d.UnitPrice * int64(d.Quantity)
}
