package readflow

import (
	"fmt"
	"io"
)

// readRequest 一份读取意图: 从当前位置起读取units个数据块并依次投递.
// Request(n) 的n个单位合并为一个请求入队, 由读循环逐个单位执行.
type readRequest struct {
	units    int64
	state    *subscriberState
	buffers  Buffers
	throttle *throttle
}

// execute 读取一个数据块. 订阅者已处于终止状态时什么也不做.
func (r *readRequest) execute(h *handle) {
	if r.state.done() || !h.isOpen() {
		return
	}

	size := r.buffers.SizeFor(h.position())
	if size <= 0 {
		r.state.fail(fmt.Errorf("%w: got %d at position %d", ErrBufferSize, size, h.position()))
		return
	}

	buf := make([]byte, size)
	n, err := h.readAt(buf)
	if err != nil && err != io.EOF {
		r.state.fail(wrapError(ErrRead, fmt.Errorf("position %d: %w", h.position(), err)))
		return
	}
	if n == 0 {
		r.state.complete()
		return
	}

	h.advance(n)
	r.throttle.take(n)
	r.state.onNext(buf[:n])
}
