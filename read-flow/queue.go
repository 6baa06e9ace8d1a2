package readflow

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gammazero/deque"
)

// demandQueue 无界的FIFO需求队列, 多生产者 (Request) 单消费者 (读循环), 所有操作均不阻塞.
type demandQueue interface {
	push(r *readRequest)
	poll() (*readRequest, bool)
	// ready 在push之后可读, 忙轮询模式返回nil.
	ready() <-chan struct{}
	len() int64
}

// lockFreeQueue 并发安全的无锁队列, 供忙轮询模式使用.
type lockFreeQueue struct {
	head  unsafe.Pointer
	tail  unsafe.Pointer
	count int64
}

type node struct {
	r    *readRequest
	next unsafe.Pointer
}

func newLockFreeQueue() *lockFreeQueue {
	// n作为dummy node, head -> dummy node, tail -> dummy node
	n := unsafe.Pointer(&node{})
	return &lockFreeQueue{
		head: n,
		tail: n,
	}
}

func (q *lockFreeQueue) push(r *readRequest) {
	n := &node{r: r}

	for {
		tail := load(&q.tail)
		tnext := load(&tail.next)
		if tail != load(&q.tail) {
			continue
		}
		if tnext != nil {
			// 其他goroutine已插入新数据, 帮忙移动尾指针
			cas(&q.tail, tail, tnext)
			continue
		}
		if cas(&tail.next, nil, n) {
			// 链接成功即入队成功, 尾指针移动失败说明已被其他goroutine推进
			atomic.AddInt64(&q.count, 1)
			cas(&q.tail, tail, n)
			return
		}
	}
}

func (q *lockFreeQueue) poll() (*readRequest, bool) {
	for {
		head := load(&q.head)
		tail := load(&q.tail)
		hnext := load(&head.next)
		if head != load(&q.head) {
			continue
		}
		if head == tail {
			if hnext == nil {
				return nil, false
			}
			cas(&q.tail, tail, hnext)
			continue
		}
		r := hnext.r
		if cas(&q.head, head, hnext) {
			atomic.AddInt64(&q.count, -1)
			return r, true
		}
	}
}

func (q *lockFreeQueue) ready() <-chan struct{} {
	return nil
}

func (q *lockFreeQueue) len() int64 {
	return atomic.LoadInt64(&q.count)
}

func load(p *unsafe.Pointer) *node {
	return (*node)(atomic.LoadPointer(p))
}

func cas(p *unsafe.Pointer, old, new *node) bool {
	return atomic.CompareAndSwapPointer(p, unsafe.Pointer(old), unsafe.Pointer(new))
}

// dequeQueue 基于双端队列的需求队列, 每次push都会唤醒等待中的读循环.
type dequeQueue struct {
	mu sync.Mutex

	q      deque.Deque
	signal chan struct{}
}

func newDequeQueue() *dequeQueue {
	return &dequeQueue{
		signal: make(chan struct{}, 1),
	}
}

func (q *dequeQueue) push(r *readRequest) {
	q.mu.Lock()
	q.q.PushBack(r)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
		// a wake-up is already pending
	}
}

func (q *dequeQueue) poll() (*readRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.q.Len() == 0 {
		return nil, false
	}
	return q.q.PopFront().(*readRequest), true
}

func (q *dequeQueue) ready() <-chan struct{} {
	return q.signal
}

func (q *dequeQueue) len() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	return int64(q.q.Len())
}
