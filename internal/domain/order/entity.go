package order

import (
	"time"
)

// Status 订单状态
// 设计说明：
// 1. 用typed int而非裸字符串，状态转换在编译期就有类型约束
// 2. 序列化时输出小写字符串（pending/shipped/delivered/cancelled）
// 3. 合法转换关系集中在statusTransitions表里，新增状态只改一处
type Status int

const (
	StatusPending   Status = iota // 待发货
	StatusShipped                 // 已发货
	StatusDelivered               // 已送达（终态）
	StatusCancelled               // 已取消（终态）
)

var statusNames = map[Status]string{
	StatusPending:   "pending",
	StatusShipped:   "shipped",
	StatusDelivered: "delivered",
	StatusCancelled: "cancelled",
}

// statusTransitions 状态机定义
// pending可发货或取消；shipped可送达或取消；终态不可再变
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid 是否为已定义的状态值
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0 && s.Valid()
}

// CanTransitionTo 判断能否转换到目标状态
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseStatus 解析小写状态字符串
func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return 0, ErrUnknownStatus
}

// Order 订单实体
// 每个订单对应一本图书的一次购买，结算时购物车的每个条目生成一个订单，
// 这样不同卖家的货各自独立流转状态
type Order struct {
	ID         uint
	BuyerID    uint
	SellerID   uint
	BookID     uint
	Quantity   int
	TotalPrice int64 // 下单时的总价快照（分），图书后续改价不影响已有订单
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder 创建待发货订单
func NewOrder(buyerID, sellerID, bookID uint, quantity int, totalPrice int64) *Order {
	return &Order{
		BuyerID:    buyerID,
		SellerID:   sellerID,
		BookID:     bookID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		Status:     StatusPending,
	}
}

// TransitionTo 执行状态转换
// 不合法的转换返回ErrInvalidTransition并保持原状态
func (o *Order) TransitionTo(target Status) error {
	if !target.Valid() {
		return ErrUnknownStatus
	}
	if !o.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	o.Status = target
	return nil
}

// IsOwnedBySeller 订单是否属于指定卖家
func (o *Order) IsOwnedBySeller(sellerID uint) bool {
	return o.SellerID == sellerID
}
