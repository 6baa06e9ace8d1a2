package readflow

import (
	"fmt"
)

// readSubscription 将Request(n)转换为需求队列中的读请求, 将Cancel()转换为终止标记.
type readSubscription struct {
	queue    demandQueue
	state    *subscriberState
	buffers  Buffers
	throttle *throttle
}

// Request 申请n个数据块. n<=0 视为协议违规, 以OnError终止订阅.
func (s *readSubscription) Request(n int64) {
	if n <= 0 {
		s.state.fail(fmt.Errorf("%w: %d", ErrNonPositiveDemand, n))
		return
	}
	if s.state.done() {
		return
	}
	s.queue.push(&readRequest{
		units:    n,
		state:    s.state,
		buffers:  s.buffers,
		throttle: s.throttle,
	})
}

// Cancel 取消订阅, 幂等. 数据源由读循环在下次检查时关闭.
func (s *readSubscription) Cancel() {
	s.state.cancel()
}

// noopSubscription 打开数据源失败时交给订阅者的空订阅.
type noopSubscription struct{}

func (noopSubscription) Request(int64) {}

func (noopSubscription) Cancel() {}
