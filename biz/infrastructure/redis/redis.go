package redis

import (
	"sync"

	"flashcard-show/biz/infrastructure/config"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

var instance *redis.Redis
var once sync.Once

// GetRedis 进程内共享一个redis客户端, 目前只有联想缓存使用
func GetRedis(config *config.Config) *redis.Redis {
	once.Do(func() {
		instance = redis.MustNewRedis(*config.Redis)
	})
	return instance
}
