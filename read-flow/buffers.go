package readflow

const (
	KB4  = 4 * 1024
	KB16 = 16 * 1024
	KB64 = 64 * 1024
	MB1  = 1024 * 1024
)

// Buffers 缓冲区分配策略, 根据读取位置决定下一次读取的容量.
type Buffers interface {
	SizeFor(position int64) int
}

// BuffersFunc 将普通函数适配为Buffers.
type BuffersFunc func(position int64) int

// SizeFor 实现Buffers接口.
func (f BuffersFunc) SizeFor(position int64) int {
	return f(position)
}

// FixedBuffers 固定容量的缓冲区策略.
type FixedBuffers int

// SizeFor 实现Buffers接口.
func (b FixedBuffers) SizeFor(int64) int {
	return int(b)
}

// StepBuffers 从Min开始, 读取位置每越过当前容量一次, 容量翻倍, 直到Max.
// Min默认为KB4, Max默认为MB1.
type StepBuffers struct {
	Min int
	Max int
}

// SizeFor 实现Buffers接口.
func (b StepBuffers) SizeFor(position int64) int {
	size, max := b.Min, b.Max
	if size <= 0 {
		size = KB4
	}
	if max <= 0 {
		max = MB1
	}
	for int64(size) <= position && size < max {
		size *= 2
	}
	if size > max {
		size = max
	}
	return size
}
