package readflow

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriberStateFirstTransitionWins(t *testing.T) {
	rec := newRecorder()
	s := newSubscriberState(rec)

	assert.False(t, s.done())
	assert.True(t, s.complete())
	assert.False(t, s.fail(errors.New("late")))
	assert.False(t, s.cancel())
	assert.True(t, s.done())

	s.deliverTerminal()
	s.deliverTerminal()
	assert.Equal(t, 1, rec.completes)
	assert.Empty(t, rec.errs)

	s.onNext([]byte("x"))
	assert.Equal(t, 0, rec.numChunks())
}

func TestSubscriberStateCancelSuppressesTerminal(t *testing.T) {
	rec := newRecorder()
	s := newSubscriberState(rec)

	assert.True(t, s.cancel())
	assert.False(t, s.complete())
	s.deliverTerminal()
	assert.Equal(t, 0, rec.numTerminals())

	select {
	case <-s.wait():
	default:
		t.Fatal("done channel must be closed after cancellation")
	}
}

func TestSubscriberStateOnSubscribeOnce(t *testing.T) {
	var calls int
	rec := newRecorder()
	rec.onSubscribe = func(*recorder, Subscription) { calls++ }
	s := newSubscriberState(rec)

	s.onSubscribe(noopSubscription{})
	s.onSubscribe(noopSubscription{})
	assert.Equal(t, 1, calls)
}

func TestSubscriberStateRacingTransitions(t *testing.T) {
	for i := 0; i < 200; i++ {
		rec := newRecorder()
		s := newSubscriberState(rec)

		var wins int32
		var mu sync.Mutex
		wg := new(sync.WaitGroup)
		for _, transit := range []func() bool{
			s.complete,
			func() bool { return s.fail(errors.New("io")) },
			s.cancel,
			s.cancel,
		} {
			wg.Add(1)
			go func(f func() bool) {
				defer wg.Done()
				if f() {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(transit)
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins)
		s.deliverTerminal()
		assert.True(t, rec.numTerminals() <= 1)
	}
}
