package readflow

import (
	"io"
	"os"
)

// Source 可按偏移读取并可关闭的字节源, *os.File 即为一种实现.
type Source interface {
	io.ReaderAt
	io.Closer
}

// Opener 根据名称打开字节源.
type Opener func(name string) (Source, error)

// OpenFile 以只读方式打开本地文件.
func OpenFile(name string) (Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// handle tracks the read position of an open source.
// Only the worker goroutine touches it once the loop is scheduled.
type handle struct {
	src    Source
	pos    int64
	closed bool
}

func newHandle(src Source) *handle {
	return &handle{src: src}
}

func (h *handle) readAt(p []byte) (int, error) {
	return h.src.ReadAt(p, h.pos)
}

func (h *handle) advance(n int) {
	h.pos += int64(n)
}

func (h *handle) position() int64 {
	return h.pos
}

func (h *handle) isOpen() bool {
	return !h.closed
}

func (h *handle) close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.src.Close()
}
