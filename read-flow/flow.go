package readflow

import (
	"github.com/rs/zerolog/log"
)

// Publisher 按订阅者的需求推送数据块.
type Publisher interface {
	Subscribe(sub Subscriber)
}

// Subscriber 接收数据块的订阅者.
type Subscriber interface {
	OnSubscribe(s Subscription)
	OnNext(chunk []byte)
	OnError(err error)
	OnComplete()
}

// Subscription 订阅者用于申请数据和取消订阅.
type Subscription interface {
	Request(n int64)
	Cancel()
}

// ReadFlow 文件读取流发布者, 每次订阅打开一个独立的数据源句柄.
type ReadFlow struct {
	cfg ReadFlowCfg
}

// NewReadFlow 返回ReadFlow实例.
func NewReadFlow(cfg *ReadFlowCfg) *ReadFlow {
	if cfg == nil {
		cfg = &ReadFlowCfg{}
	}
	return &ReadFlow{
		cfg: cfg.withDefaults(),
	}
}

// Subscribe 在调用方goroutine上打开数据源并投递OnSubscribe,
// 其余信号全部在执行器调度的读循环上投递.
func (f *ReadFlow) Subscribe(sub Subscriber) {
	if sub == nil {
		panic("readflow: subscriber can't be nil")
	}

	src, err := f.cfg.Opener(f.cfg.Path)
	if err != nil {
		sub.OnSubscribe(noopSubscription{})
		sub.OnError(wrapError(ErrOpen, err))
		return
	}

	h := newHandle(src)
	queue := f.cfg.newQueue()
	state := newSubscriberState(sub)
	f.deliverSubscription(h, state, &readSubscription{
		queue:    queue,
		state:    state,
		buffers:  f.cfg.Buffers,
		throttle: newThrottle(f.cfg.BytesPerSecond),
	})

	loop := &readLoop{
		name:  f.cfg.Path,
		queue: queue,
		state: state,
		h:     h,
	}
	if err := f.cfg.Executor.Submit(loop.run); err != nil {
		log.Warn().Err(err).Str("source", f.cfg.Path).Msg("executor rejected read loop")
		// no worker owns the handle, so the caller releases it
		if cerr := h.close(); cerr != nil {
			log.Warn().Err(cerr).Str("source", f.cfg.Path).Msg("failed to close source")
		}
		state.fail(wrapError(ErrRejected, err))
		state.deliverTerminal()
	}
}

// deliverSubscription 投递OnSubscribe. 订阅者panic时读循环尚未调度, 由调用方关闭句柄后继续panic.
func (f *ReadFlow) deliverSubscription(h *handle, state *subscriberState, s Subscription) {
	defer func() {
		if p := recover(); p != nil {
			state.cancel()
			if cerr := h.close(); cerr != nil {
				log.Warn().Err(cerr).Str("source", f.cfg.Path).Msg("failed to close source")
			}
			panic(p)
		}
	}()
	state.onSubscribe(s)
}
