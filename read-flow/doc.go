/*
Package readflow 将可按偏移读取的阻塞字节源 (文件) 转换为带背压的异步推送流.

Reading Rules

type ReaderAt interface {
    ReadAt(p []byte, off int64) (n int, err error)
}

1. A ReadAt() call reads up to len(p) bytes into p starting at off.
2. When n < len(p), ReadAt() always returns a non-nil error explaining why.
3. At the end of the source, ReadAt() may return a non-zero n together with err=io.EOF.
   Those bytes are still delivered as one chunk; the next read returns n=0, err=io.EOF
   and the stream completes.
4. Any other error is terminal: the bytes of a failed read are dropped and nothing is retried.

Flow Rules

1. Subscribe() opens the source on the calling goroutine, every other signal
   (OnNext, OnComplete, OnError) is delivered on the worker goroutine.
2. Request(n) grants n more chunks, n must be positive.
3. Exactly one of OnComplete / OnError is delivered unless the subscriber cancels.
4. Cancel() takes effect on the next signal: a chunk whose delivery already started
   on the worker goroutine may still arrive when Cancel() is called from another
   goroutine. Cancel() called inside OnNext stops delivery at once.
   The worker closes the source on its next poll.
*/
package readflow
