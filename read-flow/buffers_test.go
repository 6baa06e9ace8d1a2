package readflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedBuffers(t *testing.T) {
	b := FixedBuffers(KB4)
	assert.Equal(t, KB4, b.SizeFor(0))
	assert.Equal(t, KB4, b.SizeFor(1<<40))

	assert.Equal(t, 64*1024, FixedBuffers(KB64).SizeFor(0))
}

func TestStepBuffers(t *testing.T) {
	b := StepBuffers{Min: 1024, Max: 8192}
	assert.Equal(t, 1024, b.SizeFor(0))
	assert.Equal(t, 1024, b.SizeFor(1023))
	assert.Equal(t, 2048, b.SizeFor(1024))
	assert.Equal(t, 4096, b.SizeFor(3000))
	assert.Equal(t, 8192, b.SizeFor(1<<40))

	var zero StepBuffers
	assert.Equal(t, KB4, zero.SizeFor(0))
	assert.Equal(t, MB1, zero.SizeFor(1<<62))
}

func TestBuffersFunc(t *testing.T) {
	b := BuffersFunc(func(position int64) int { return int(position) + 1 })
	assert.Equal(t, 11, b.SizeFor(10))
}
