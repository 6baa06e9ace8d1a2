package readflow

import (
	"fmt"
	"runtime"

	"github.com/petermattis/goid"
	"github.com/rs/zerolog/log"
)

// readLoop 读循环, 独占数据源句柄, 在订阅者终止前不断从需求队列取出读请求执行.
type readLoop struct {
	name  string
	queue demandQueue
	state *subscriberState
	h     *handle
}

func (l *readLoop) run() {
	gid := goid.Get()
	log.Debug().Int64("goid", gid).Str("source", l.name).Msg("read loop started")

	defer func() {
		l.closeHandle()
		log.Debug().Int64("goid", gid).Str("source", l.name).
			Str("state", l.state.kind().String()).
			Int64("position", l.h.position()).
			Msg("read loop stopped")
	}()

	l.drain()
	l.deliverTerminal()
}

func (l *readLoop) drain() {
	var (
		cur  *readRequest
		left int64
	)
	for !l.state.done() {
		if left == 0 {
			r, ok := l.queue.poll()
			if !ok {
				l.idle()
				continue
			}
			cur, left = r, r.units
		}
		l.execute(cur)
		left--
	}
}

// idle 等待新的需求. 停放模式下由Request或终止信号唤醒, 忙轮询模式下仅让出处理器.
func (l *readLoop) idle() {
	ready := l.queue.ready()
	if ready == nil {
		runtime.Gosched()
		return
	}
	select {
	case <-ready:
	case <-l.state.wait():
	}
}

func (l *readLoop) execute(r *readRequest) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Str("source", l.name).Msgf("read request panicked: %v", p)
			l.state.fail(wrapError(ErrWorkerPanic, fmt.Errorf("%v", p)))
		}
	}()
	r.execute(l.h)
}

func (l *readLoop) deliverTerminal() {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Str("source", l.name).Msgf("subscriber panicked on terminal signal: %v", p)
		}
	}()
	l.state.deliverTerminal()
}

func (l *readLoop) closeHandle() {
	if !l.h.isOpen() {
		return
	}
	if err := l.h.close(); err != nil {
		log.Warn().Err(err).Str("source", l.name).Msg("failed to close source")
	}
}
