package readflow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemandQueueFIFO(t *testing.T) {
	for name, q := range map[string]demandQueue{
		"lock-free": newLockFreeQueue(),
		"deque":     newDequeQueue(),
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := q.poll()
			assert.False(t, ok)

			for i := int64(1); i <= 5; i++ {
				q.push(&readRequest{units: i})
			}
			assert.Equal(t, int64(5), q.len())

			for i := int64(1); i <= 5; i++ {
				r, ok := q.poll()
				require.True(t, ok)
				assert.Equal(t, i, r.units)
			}
			_, ok = q.poll()
			assert.False(t, ok)
			assert.Equal(t, int64(0), q.len())
		})
	}
}

func TestDemandQueueConcurrentPush(t *testing.T) {
	for name, q := range map[string]demandQueue{
		"lock-free": newLockFreeQueue(),
		"deque":     newDequeQueue(),
	} {
		t.Run(name, func(t *testing.T) {
			const producers, perProducer = 16, 200

			wg := new(sync.WaitGroup)
			for i := 0; i < producers; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					for j := 0; j < perProducer; j++ {
						q.push(&readRequest{units: int64(idx*perProducer + j)})
					}
				}(i)
			}

			// single consumer, per-producer order must hold
			last := make(map[int]int64)
			var total int
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			for drained := false; !drained; {
				select {
				case <-done:
					drained = true
				default:
				}
				for {
					r, ok := q.poll()
					if !ok {
						break
					}
					producer := int(r.units) / perProducer
					if prev, seen := last[producer]; seen {
						assert.True(t, r.units > prev)
					}
					last[producer] = r.units
					total++
				}
			}
			assert.Equal(t, producers*perProducer, total)
			assert.Equal(t, int64(0), q.len())
		})
	}
}

func TestDequeQueueReadySignal(t *testing.T) {
	q := newDequeQueue()

	select {
	case <-q.ready():
		t.Fatal("empty queue must not be ready")
	default:
	}

	q.push(&readRequest{units: 1})
	q.push(&readRequest{units: 2})
	select {
	case <-q.ready():
	case <-time.After(time.Second):
		t.Fatal("push must signal readiness")
	}

	assert.Nil(t, newLockFreeQueue().ready())
}
