package readflow

import (
	"time"

	"github.com/juju/ratelimit"
	"github.com/rs/zerolog/log"
)

// throttle 限制每秒投递的字节数.
type throttle struct {
	quota  int64
	bucket *ratelimit.Bucket
}

func newThrottle(bytesPerSecond int64) *throttle {
	if bytesPerSecond <= 0 {
		return nil
	}
	return &throttle{
		quota:  bytesPerSecond,
		bucket: ratelimit.NewBucketWithRate(float64(bytesPerSecond), bytesPerSecond),
	}
}

// take 取n个字节的令牌, 如果当前令牌不足, 阻塞等待直到令牌可用.
func (t *throttle) take(n int) {
	if t == nil || n <= 0 {
		return
	}
	waitUntilAvailable := t.bucket.Take(int64(n))
	if waitUntilAvailable != 0 {
		log.Debug().Msgf("byte rate quota %d/s exceeds, wait %s until tokens turn to be available", t.quota, waitUntilAvailable.String())
		time.Sleep(waitUntilAvailable)
	}
}
