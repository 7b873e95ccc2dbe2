package adaptor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"flashcard-show/biz/application/dto/basic"
	"flashcard-show/biz/infrastructure/consts"

	"github.com/cloudwego/hertz/pkg/app"
	"golang.org/x/time/rate"
)

// 超过该时长未访问的限流器会被清理
const visitorExpiry = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按客户端ip的令牌桶限流
func RateLimiter(r rate.Limit, burst int) app.HandlerFunc {
	var mu sync.Mutex
	store := make(map[string]*visitor)
	lastSweep := time.Now()

	return func(ctx context.Context, c *app.RequestContext) {
		key := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > visitorExpiry {
			for k, v := range store {
				if now.Sub(v.lastSeen) > visitorExpiry {
					delete(store, k)
				}
			}
			lastSweep = now
		}
		v, ok := store[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(r, burst)}
			store[key] = v
		}
		v.lastSeen = now
		mu.Unlock()

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, &basic.Response{
				Code: int64(consts.ErrRateLimited.Code()),
				Msg:  consts.ErrRateLimited.Error(),
			})
			return
		}
		c.Next(ctx)
	}
}
