package ratelimit

import (
	"sync"
	"time"
)

// Limiter 进程内令牌桶限流器，用于限制排名跑批这类重计算操作的触发频率。
// 按分钟配置速率，桶容量决定允许的突发量。
type Limiter struct {
	mu         sync.Mutex
	ratePerSec float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
}

// NewLimiter 创建限流器。qpm为每分钟允许的操作数；
// burst<=0时容量取qpm的一半(至少1)。
func NewLimiter(qpm, burst int) *Limiter {
	if burst <= 0 {
		burst = qpm / 2
		if burst <= 0 {
			burst = 1
		}
	}
	return &Limiter{
		ratePerSec: float64(qpm) / 60.0,
		capacity:   float64(burst),
		tokens:     float64(burst),
		lastRefill: time.Now(),
	}
}

// Allow 尝试消耗一个令牌，桶空时立即返回false而不是阻塞等待
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	l.lastRefill = now

	l.tokens += elapsed * l.ratePerSec
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
}
