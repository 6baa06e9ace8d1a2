package readflow

import (
	"bytes"
	"context"
)

const (
	__DefaultStreamWindow = 16
)

// chanSubscriber 把推送信号缓存在容量为window的通道里.
// 未满足的需求永远不超过window, 所以OnNext不会阻塞读循环.
type chanSubscriber struct {
	sub    chan Subscription
	chunks chan []byte
	errc   chan error
}

func (c *chanSubscriber) OnSubscribe(s Subscription) {
	c.sub <- s
}

func (c *chanSubscriber) OnNext(chunk []byte) {
	c.chunks <- chunk
}

func (c *chanSubscriber) OnError(err error) {
	c.errc <- err
	close(c.chunks)
}

func (c *chanSubscriber) OnComplete() {
	close(c.chunks)
}

// AsStream 将推送流转换为通道流, 始终保持window个未满足的需求.
// 数据通道关闭后, 错误通道至多给出一个错误 (数据源错误或ctx错误).
func AsStream(ctx context.Context, pub Publisher, window int64) (<-chan []byte, <-chan error) {
	if window <= 0 {
		window = __DefaultStreamWindow
	}
	c := &chanSubscriber{
		sub:    make(chan Subscription, 1),
		chunks: make(chan []byte, window),
		errc:   make(chan error, 1),
	}
	pub.Subscribe(c)
	s := <-c.sub

	stream := make(chan []byte)
	errStream := make(chan error, 1)
	go func() {
		defer close(errStream)
		defer close(stream)

		s.Request(window)
		for {
			select {
			case <-ctx.Done():
				s.Cancel()
				errStream <- ctx.Err()
				return
			case chunk, ok := <-c.chunks:
				if !ok {
					select {
					case err := <-c.errc:
						errStream <- err
					default:
					}
					return
				}
				select {
				case <-ctx.Done():
					s.Cancel()
					errStream <- ctx.Err()
					return
				case stream <- chunk:
					s.Request(1)
				}
			}
		}
	}()
	return stream, errStream
}

// ReadAll 读取整个数据源并返回其全部内容.
func ReadAll(ctx context.Context, pub Publisher) ([]byte, error) {
	var buf bytes.Buffer
	stream, errStream := AsStream(ctx, pub, __DefaultStreamWindow)
	for chunk := range stream {
		buf.Write(chunk)
	}
	if err := <-errStream; err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
