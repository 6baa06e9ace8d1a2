package kafka

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Shopify/sarama"
	"github.com/rs/zerolog/log"

	readflow "github.com/usherasnick/file-flow/read-flow"
)

// Sink 将读取流的每个数据块作为一条消息写入Kafka.
// 每写成功一条才追加一个需求, 未满足的需求不超过Window.
type Sink struct {
	conf     *Config
	producer sarama.SyncProducer

	sub      readflow.Subscription
	offset   int64 // 下一个数据块在源中的起始位置
	messages int64

	once sync.Once
	err  error
	done chan struct{}
}

// NewSink 返回Sink实例.
func NewSink(cfg *Config, producer sarama.SyncProducer) *Sink {
	return &Sink{
		conf:     cfg,
		producer: producer,
		done:     make(chan struct{}),
	}
}

// OnSubscribe 实现readflow.Subscriber接口.
func (s *Sink) OnSubscribe(sub readflow.Subscription) {
	s.sub = sub
	sub.Request(s.conf.window())
}

// OnNext 实现readflow.Subscriber接口.
func (s *Sink) OnNext(chunk []byte) {
	message := &sarama.ProducerMessage{
		Topic:    s.conf.Topic,
		Value:    sarama.ByteEncoder(chunk),
		Metadata: s.offset,
	}
	if len(s.conf.Key) > 0 {
		message.Key = sarama.StringEncoder(s.conf.Key)
	}

	partition, offset, err := s.producer.SendMessage(message)
	if err != nil {
		log.Error().Err(err).Str("topic", s.conf.Topic).Int64("position", s.offset).Msg("failed to publish chunk")
		s.sub.Cancel()
		s.finish(err)
		return
	}
	log.Debug().Int32("partition", partition).Int64("offset", offset).Int("size", len(chunk)).Msg("chunk published")

	s.offset += int64(len(chunk))
	atomic.AddInt64(&s.messages, 1)
	s.sub.Request(1)
}

// OnError 实现readflow.Subscriber接口.
func (s *Sink) OnError(err error) {
	s.finish(err)
}

// OnComplete 实现readflow.Subscriber接口.
func (s *Sink) OnComplete() {
	s.finish(nil)
}

func (s *Sink) finish(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

// Wait 等待读取流结束, ctx结束时取消订阅.
func (s *Sink) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		if s.sub != nil {
			s.sub.Cancel()
		}
		return ctx.Err()
	}
}

// Messages 返回已经写入的消息数量.
func (s *Sink) Messages() int64 {
	return atomic.LoadInt64(&s.messages)
}
