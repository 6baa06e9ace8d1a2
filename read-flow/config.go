package readflow

const (
	__DefaultBufferSize = KB16
)

// LoopMode 读循环等待新需求的方式.
type LoopMode int

const (
	// LoopPark 队列为空时阻塞等待, 由Request或Cancel唤醒.
	LoopPark LoopMode = iota
	// LoopBusy 队列为空时忙轮询, 以CPU换取最低的调度延迟.
	LoopBusy
)

func (m LoopMode) String() string {
	if m == LoopBusy {
		return "busy"
	}
	return "park"
}

// ReadFlowCfg ReadFlow配置
type ReadFlowCfg struct {
	Path           string   // 数据源名称, 交给Opener打开
	Buffers        Buffers  // 缓冲区分配策略, 默认16KB定长
	Executor       Executor // 读循环调度器, 默认每个订阅一个goroutine
	Opener         Opener   // 默认以只读方式打开本地文件
	Mode           LoopMode
	BytesPerSecond int64 // 每秒最多投递的字节数, <=0 表示不限速
}

func (cfg *ReadFlowCfg) withDefaults() ReadFlowCfg {
	c := *cfg
	if c.Buffers == nil {
		c.Buffers = FixedBuffers(__DefaultBufferSize)
	}
	if c.Executor == nil {
		c.Executor = GoExecutor
	}
	if c.Opener == nil {
		c.Opener = OpenFile
	}
	return c
}

func (cfg *ReadFlowCfg) newQueue() demandQueue {
	if cfg.Mode == LoopBusy {
		return newLockFreeQueue()
	}
	return newDequeQueue()
}
