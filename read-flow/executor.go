package readflow

// Executor 调度读循环, 可以拒绝任务.
type Executor interface {
	Submit(task func()) error
}

// ExecutorFunc 将普通函数适配为Executor.
type ExecutorFunc func(task func()) error

// Submit 实现Executor接口.
func (f ExecutorFunc) Submit(task func()) error {
	return f(task)
}

// GoExecutor 为每个任务启动一个新的goroutine, 从不拒绝.
var GoExecutor Executor = ExecutorFunc(func(task func()) error {
	go task()
	return nil
})
