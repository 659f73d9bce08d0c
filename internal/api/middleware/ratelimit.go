package middleware

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/yatube/pkg/response"
)

// limiterIdle 超过这段时间没有请求的客户端会被清理
const limiterIdle = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimiter 按客户端 IP 的令牌桶，空闲的条目按 limiterIdle 惰性清理
type RateLimiter struct {
	limiters  cmap.ConcurrentMap[string, *clientLimiter]
	rps       rate.Limit
	burst     int
	idle      time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

// NewRateLimiter rps <= 0 时不限流
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	l := &RateLimiter{
		limiters: cmap.New[*clientLimiter](),
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     limiterIdle,
		now:      time.Now,
	}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	now := l.now().UnixNano()
	e := l.limiters.Upsert(key, nil, func(exist bool, old, _ *clientLimiter) *clientLimiter {
		if exist {
			return old
		}
		return &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
	})
	e.lastSeen.Store(now)
	l.maybeSweep(now)
	return e.limiter
}

func (l *RateLimiter) maybeSweep(now int64) {
	last := l.lastSweep.Load()
	if now-last < int64(l.idle) || !l.lastSweep.CompareAndSwap(last, now) {
		return
	}
	l.sweep(now)
}

// sweep 删除 idle 内没有出现过的客户端
func (l *RateLimiter) sweep(now int64) {
	cutoff := now - int64(l.idle)
	for _, key := range l.limiters.Keys() {
		l.limiters.RemoveCb(key, func(_ string, e *clientLimiter, exists bool) bool {
			return exists && e.lastSeen.Load() < cutoff
		})
	}
}

// Len 当前跟踪的客户端数量
func (l *RateLimiter) Len() int { return l.limiters.Count() }

// Allow 报告 key 是否还有余量
func (l *RateLimiter) Allow(key string) bool {
	if l.rps <= 0 {
		return true
	}
	return l.limiter(key).Allow()
}

// Middleware 超限时 API 返回 429 JSON，网页返回纯文本 429
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.TooManyRequests(c)
			return
		}
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
}
