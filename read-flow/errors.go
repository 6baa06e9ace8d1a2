package readflow

import (
	"errors"
)

var (
	// ErrOpen 打开数据源失败.
	ErrOpen = errors.New("readflow: failed to open source")
	// ErrNonPositiveDemand 订阅者请求了非正数的数据量, 违反了背压协议.
	ErrNonPositiveDemand = errors.New("readflow: non-positive demand requested")
	// ErrRead 读取数据块失败.
	ErrRead = errors.New("readflow: failed to read chunk")
	// ErrBufferSize 缓冲区策略返回了非法的容量.
	ErrBufferSize = errors.New("readflow: buffer size must be positive")
	// ErrWorkerPanic 读循环中出现了未预料的异常.
	ErrWorkerPanic = errors.New("readflow: worker panicked")
	// ErrRejected 执行器拒绝了读循环任务.
	ErrRejected = errors.New("readflow: executor rejected read loop")
)

// flowError 将底层错误归类到某个哨兵错误之下,
// errors.Is 同时匹配哨兵错误与底层错误.
type flowError struct {
	class error
	err   error
}

func wrapError(class, err error) error {
	return &flowError{class: class, err: err}
}

func (e *flowError) Error() string {
	return e.class.Error() + ": " + e.err.Error()
}

func (e *flowError) Unwrap() error {
	return e.err
}

func (e *flowError) Is(target error) bool {
	return target == e.class
}
