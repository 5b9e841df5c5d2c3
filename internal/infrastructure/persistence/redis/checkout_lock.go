package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	orderapp "github.com/xiebiao/bookmart/internal/application/order"
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// checkoutLockTTL 锁的保底过期时间
// 进程崩溃没来得及释放时，锁最多卡这么久
const checkoutLockTTL = 30 * time.Second

// CheckoutLock 基于Redis SETNX的买家结算锁
// Key设计：checkout:{buyer_id}
type CheckoutLock struct {
	client *redis.Client
}

// NewCheckoutLock 创建结算锁
func NewCheckoutLock(client *redis.Client) orderapp.CheckoutLock {
	return &CheckoutLock{client: client}
}

// Acquire 获取买家结算锁
// SETNX成功即持有锁，失败说明该买家有结算在进行中
func (l *CheckoutLock) Acquire(ctx context.Context, buyerID uint) (func(), error) {
	key := fmt.Sprintf("checkout:%d", buyerID)

	ok, err := l.client.SetNX(ctx, key, "1", checkoutLockTTL).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取结算锁失败")
	}
	if !ok {
		return nil, orderapp.ErrCheckoutBusy
	}

	release := func() {
		// 释放用背景context，请求被取消也要把锁删掉
		if err := l.client.Del(context.Background(), key).Err(); err != nil {
			log.Printf("[WARN] 释放结算锁失败: buyer=%d err=%v", buyerID, err)
		}
	}
	return release, nil
}
