package utils

import (
	"sync"
	"time"
)

// StopWatch 计时器
type StopWatch struct {
	mu      sync.Mutex
	start   time.Time
	elapsed time.Duration
	running bool
}

// Start 开始计时，重复调用会重新开始
func (w *StopWatch) Start() {
	w.mu.Lock()
	w.start = time.Now()
	w.elapsed = 0
	w.running = true
	w.mu.Unlock()
}

// Stop 停止计时并返回耗时，未开始时返回 0
func (w *StopWatch) Stop() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		w.elapsed = time.Since(w.start)
		w.running = false
	}
	return w.elapsed
}

// Elapsed 当前耗时，计时中返回到目前为止的耗时
func (w *StopWatch) Elapsed() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return time.Since(w.start)
	}
	return w.elapsed
}
