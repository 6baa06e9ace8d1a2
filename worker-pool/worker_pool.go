package workerpool

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrPoolClosed 任务池已关闭.
	ErrPoolClosed = errors.New("workerpool: pool has been closed")
	// ErrPoolExhausted 没有空闲令牌, 任务被拒绝.
	ErrPoolExhausted = errors.New("workerpool: no idle token")
)

// WorkerPool 基于令牌的有界任务池, 每个任务持有一个令牌运行在独立的goroutine上.
// Submit 不会阻塞: 没有空闲令牌时直接拒绝.
type WorkerPool struct {
	mu sync.Mutex

	concurrency int
	q           chan int
	closed      bool
	wg          sync.WaitGroup
}

// NewWorkerPool 返回WorkerPool实例.
func NewWorkerPool(concurrency int) *WorkerPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	p := WorkerPool{
		concurrency: concurrency,
		q:           make(chan int, concurrency),
	}
	for i := 0; i < concurrency; i++ {
		p.q <- i
	}
	return &p
}

// Submit 提交任务, 任务池关闭或令牌耗尽时返回错误.
func (p *WorkerPool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case token := <-p.q:
		p.wg.Add(1)
		go p.run(token, task)
		return nil
	default:
		log.Warn().Int("concurrency", p.concurrency).Msg("worker pool exhausted, reject task")
		return ErrPoolExhausted
	}
}

func (p *WorkerPool) run(token int, task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("token", token).Msgf("task panicked: %v", r)
		}
		p.q <- token
		p.wg.Done()
	}()
	task()
}

// Idle 返回当前空闲的令牌数量.
func (p *WorkerPool) Idle() int {
	return len(p.q)
}

// Close 关闭任务池, 不再接收新任务.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
}

// Join 等待所有已提交的任务运行结束.
func (p *WorkerPool) Join() {
	p.wg.Wait()
}
