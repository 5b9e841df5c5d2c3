package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errDownstream = errors.New("downstream error")

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

func TestClosedStatePassesRequests(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	called := 0
	err := cb.Execute(func() error {
		called++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, called)
	assert.Equal(t, StateClosed, cb.State())
}

func TestTripsAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errDownstream })
	}
	assert.Equal(t, StateOpen, cb.State())

	// 打开后快速失败，不调用下游
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestHalfOpenRecovers(t *testing.T) {
	cb := newTestBreaker(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errDownstream })
	}
	assert.Equal(t, StateOpen, cb.State())

	// 超时后进入半开
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	// 探测成功，关闭熔断器
	err := cb.Execute(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errDownstream })
	}
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	// 探测失败，立即转回打开
	err := cb.Execute(func() error { return errDownstream })
	assert.ErrorIs(t, err, errDownstream)
	assert.Equal(t, StateOpen, cb.State())
}

func TestHalfOpenLimitsRequests(t *testing.T) {
	cb := newTestBreaker(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errDownstream })
	}
	time.Sleep(60 * time.Millisecond)

	// 先触发OPEN→HALF_OPEN切换（切换时会重置统计），再占用探测名额
	assert.Equal(t, StateHalfOpen, cb.State())

	// MaxRequests=1：第一个探测请求占用名额后，后续请求被拒
	cb.mu.Lock()
	cb.counts.Requests = 1
	cb.mu.Unlock()

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrOpenState)
}

func TestStateChangeCallback(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errDownstream })
	}
	assert.Equal(t, []string{"CLOSED->OPEN"}, transitions)
}

func TestFailureRate(t *testing.T) {
	c := Counts{}
	assert.Equal(t, 0.0, c.FailureRate())

	c.Requests = 4
	c.TotalFailures = 1
	assert.Equal(t, 0.25, c.FailureRate())
}
