package readflow

import (
	"sync/atomic"
	"unsafe"
)

type terminalKind int

const (
	terminalCompleted terminalKind = iota + 1
	terminalErrored
	terminalCancelled
)

func (k terminalKind) String() string {
	switch k {
	case terminalCompleted:
		return "completed"
	case terminalErrored:
		return "errored"
	case terminalCancelled:
		return "cancelled"
	}
	return "active"
}

// terminal is immutable once published.
type terminal struct {
	kind  terminalKind
	cause error
}

// subscriberState 包装订阅者回调, 保证信号投递协议:
// OnSubscribe 最先且仅投递一次, 终止后不再投递 OnNext,
// OnComplete / OnError 至多投递一次, 取消后不投递任何终止信号.
type subscriberState struct {
	sub Subscriber

	// nil while active, first successful CAS wins
	state unsafe.Pointer

	subscribed int32
	delivered  bool // touched only by the goroutine delivering the terminal signal
	doneCh     chan struct{}
}

func newSubscriberState(sub Subscriber) *subscriberState {
	return &subscriberState{
		sub:    sub,
		doneCh: make(chan struct{}),
	}
}

func (s *subscriberState) onSubscribe(subscription Subscription) {
	if !atomic.CompareAndSwapInt32(&s.subscribed, 0, 1) {
		return
	}
	s.sub.OnSubscribe(subscription)
}

func (s *subscriberState) onNext(chunk []byte) {
	if s.done() {
		return
	}
	s.sub.OnNext(chunk)
}

func (s *subscriberState) complete() bool {
	return s.transit(&terminal{kind: terminalCompleted})
}

func (s *subscriberState) fail(err error) bool {
	return s.transit(&terminal{kind: terminalErrored, cause: err})
}

func (s *subscriberState) cancel() bool {
	return s.transit(&terminal{kind: terminalCancelled})
}

func (s *subscriberState) transit(t *terminal) bool {
	if !atomic.CompareAndSwapPointer(&s.state, nil, unsafe.Pointer(t)) {
		return false
	}
	close(s.doneCh)
	return true
}

func (s *subscriberState) load() *terminal {
	return (*terminal)(atomic.LoadPointer(&s.state))
}

// done 任意终止状态 (完成, 出错, 取消) 发生后返回true.
func (s *subscriberState) done() bool {
	return s.load() != nil
}

func (s *subscriberState) kind() terminalKind {
	if t := s.load(); t != nil {
		return t.kind
	}
	return 0
}

func (s *subscriberState) wait() <-chan struct{} {
	return s.doneCh
}

// deliverTerminal 将终止信号交付给订阅者, 只能由单个goroutine调用.
func (s *subscriberState) deliverTerminal() {
	t := s.load()
	if t == nil || s.delivered {
		return
	}
	s.delivered = true
	switch t.kind {
	case terminalCompleted:
		s.sub.OnComplete()
	case terminalErrored:
		s.sub.OnError(t.cause)
	}
}
