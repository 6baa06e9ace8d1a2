package workerpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicJob(t *testing.T) {
	p := NewWorkerPool(10)

	var ran int32
	err := p.Submit(func() { atomic.AddInt32(&ran, 1) })
	assert.Empty(t, err)

	p.Join()
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
	assert.Equal(t, 10, p.Idle())
}

func TestExhausted(t *testing.T) {
	p := NewWorkerPool(2)

	release := make(chan struct{})
	for i := 0; i < 2; i++ {
		err := p.Submit(func() { <-release })
		assert.Empty(t, err)
	}
	assert.Equal(t, ErrPoolExhausted, p.Submit(func() {}))

	close(release)
	p.Join()
	assert.Empty(t, p.Submit(func() {}))
	p.Join()
}

func TestClosed(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	assert.Equal(t, ErrPoolClosed, p.Submit(func() {}))
}

func TestPanickingTaskReleasesToken(t *testing.T) {
	p := NewWorkerPool(1)

	err := p.Submit(func() { panic("boom") })
	assert.Empty(t, err)
	p.Join()
	assert.Equal(t, 1, p.Idle())
}
