package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	suggestionCachePrefix = "suggestion"
)

// Suggestion 缓存中的联想结果
type Suggestion struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type ISuggestionCacheMapper interface {
	Get(ctx context.Context, term string) ([]*Suggestion, error)
	Set(ctx context.Context, term string, data []*Suggestion) error
}

type SuggestionCacheMapper struct {
	rds    *gozero_redis.Redis
	expire int
}

func NewSuggestionCacheMapper(config *config.Config) *SuggestionCacheMapper {
	return &SuggestionCacheMapper{
		rds:    redis.GetRedis(config),
		expire: config.Suggestion.CacheExpire,
	}
}

// Get 从缓存获取联想结果, 未命中返回 ErrCacheMiss
func (m *SuggestionCacheMapper) Get(ctx context.Context, term string) ([]*Suggestion, error) {
	cachedData, err := m.rds.GetCtx(ctx, BuildSuggestionKey(term))
	if err != nil {
		return nil, err
	}

	if cachedData == "" {
		return nil, ErrCacheMiss
	}

	var result []*Suggestion
	if err := json.Unmarshal([]byte(cachedData), &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached data failed: %w", err)
	}

	return result, nil
}

// Set 将联想结果存入缓存, 过期时间见配置 Suggestion.CacheExpire
func (m *SuggestionCacheMapper) Set(ctx context.Context, term string, data []*Suggestion) error {
	resultBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal data failed: %w", err)
	}

	return m.rds.SetexCtx(ctx, BuildSuggestionKey(term), string(resultBytes), m.expire)
}

// BuildSuggestionKey 构造缓存key, 词条不区分大小写
func BuildSuggestionKey(term string) string {
	return fmt.Sprintf("%s:%s", suggestionCachePrefix, strings.ToLower(strings.TrimSpace(term)))
}
