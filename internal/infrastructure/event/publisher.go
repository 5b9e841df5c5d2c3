package event

import (
	"context"
	"errors"
	"log"
	"time"

	orderapp "github.com/xiebiao/bookmart/internal/application/order"
	"github.com/xiebiao/bookmart/internal/domain/order"
	"github.com/xiebiao/bookmart/pkg/circuitbreaker"
	"github.com/xiebiao/bookmart/pkg/metrics"
	"github.com/xiebiao/bookmart/pkg/mq"
)

// 路由键定义
const (
	routingOrderCreated       = "order.created"
	routingOrderStatusChanged = "order.status_changed"
)

// OrderEvent 订单事件消息体
type OrderEvent struct {
	OrderID    uint   `json:"order_id"`
	BuyerID    uint   `json:"buyer_id"`
	SellerID   uint   `json:"seller_id"`
	BookID     uint   `json:"book_id"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

// OrderPublisher 基于RabbitMQ的订单事件发布者
// 设计说明：
// 1. 发布失败只记录日志，不影响业务结果（订单已落库）
// 2. 熔断器保护：MQ持续不可用时快速失败，不阻塞请求
type OrderPublisher struct {
	publisher *mq.Publisher
	exchange  string
	breaker   *circuitbreaker.CircuitBreaker
}

// NewOrderPublisher 创建订单事件发布者
func NewOrderPublisher(publisher *mq.Publisher, exchange string) *OrderPublisher {
	cb := circuitbreaker.NewCircuitBreaker("mq-publish", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("[WARN] 熔断器状态变化: %s %s -> %s", name, from, to)
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
	})

	return &OrderPublisher{
		publisher: publisher,
		exchange:  exchange,
		breaker:   cb,
	}
}

// OrderCreated 发布订单创建事件
func (p *OrderPublisher) OrderCreated(ctx context.Context, o *order.Order) {
	metrics.OrdersCreatedTotal.Inc()
	p.publish(ctx, routingOrderCreated, o)
}

// OrderStatusChanged 发布订单状态变更事件
func (p *OrderPublisher) OrderStatusChanged(ctx context.Context, o *order.Order) {
	metrics.OrderStatusChangesTotal.WithLabelValues(o.Status.String()).Inc()
	p.publish(ctx, routingOrderStatusChanged, o)
}

func (p *OrderPublisher) publish(ctx context.Context, routingKey string, o *order.Order) {
	event := OrderEvent{
		OrderID:    o.ID,
		BuyerID:    o.BuyerID,
		SellerID:   o.SellerID,
		BookID:     o.BookID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     o.Status.String(),
		OccurredAt: time.Now().Format(time.RFC3339),
	}

	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKey, event)
	})
	if err != nil {
		result := "failure"
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			result = "rejected"
		}
		metrics.MessagesPublishedTotal.WithLabelValues(p.exchange, routingKey, result).Inc()
		log.Printf("[WARN] 发布订单事件失败: key=%s order=%d err=%v", routingKey, o.ID, err)
		return
	}
	metrics.MessagesPublishedTotal.WithLabelValues(p.exchange, routingKey, "success").Inc()
}

// 确保实现application层接口
var _ orderapp.EventPublisher = (*OrderPublisher)(nil)
