package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLimiter_BurstThenExhausted 突发量内放行，桶空后立即拒绝
func TestLimiter_BurstThenExhausted(t *testing.T) {
	l := NewLimiter(60, 3)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	// 60qpm = 每秒1个令牌，刚耗尽的桶不可能瞬间回满
	assert.False(t, l.Allow())
}

// TestLimiter_DefaultBurst 未指定容量时取qpm的一半，至少为1
func TestLimiter_DefaultBurst(t *testing.T) {
	l := NewLimiter(10, 0)
	assert.Equal(t, 5.0, l.capacity)

	l = NewLimiter(1, 0)
	assert.Equal(t, 1.0, l.capacity)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
