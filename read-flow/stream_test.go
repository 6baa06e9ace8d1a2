package readflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	src := newFakeSource(randomBytes(KB16 + 3))
	flow := NewReadFlow(&ReadFlowCfg{Buffers: FixedBuffers(KB4), Opener: src.opener()})

	data, err := ReadAll(context.Background(), flow)
	require.NoError(t, err)
	assert.Equal(t, src.data, data)
	require.Eventually(t, func() bool { return src.closed() == 1 }, waitFor, time.Millisecond)
}

func TestReadAllOpenFailure(t *testing.T) {
	openErr := errors.New("permission denied")
	flow := NewReadFlow(&ReadFlowCfg{
		Opener: func(string) (Source, error) { return nil, openErr },
	})

	data, err := ReadAll(context.Background(), flow)
	assert.Nil(t, data)
	assert.True(t, errors.Is(err, ErrOpen))
	assert.True(t, errors.Is(err, openErr))
}

func TestAsStreamCancelledByContext(t *testing.T) {
	src := newFakeSource(randomBytes(100))
	flow := NewReadFlow(&ReadFlowCfg{Buffers: FixedBuffers(1), Opener: src.opener()})

	ctx, cancel := context.WithCancel(context.Background())
	stream, errStream := AsStream(ctx, flow, 2)

	for i := 0; i < 3; i++ {
		select {
		case chunk := <-stream:
			assert.Equal(t, src.data[i:i+1], chunk)
		case <-time.After(waitFor):
			t.Fatal("timeout waiting for chunk")
		}
	}
	cancel()

	for range stream {
	}
	assert.Equal(t, context.Canceled, <-errStream)
	require.Eventually(t, func() bool { return src.closed() == 1 }, waitFor, time.Millisecond)
}
