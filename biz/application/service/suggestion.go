package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/biz/infrastructure/cache"
	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/flashcard"
	"flashcard-show/biz/infrastructure/util"
	"flashcard-show/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// 单次联想的最大条数
const maxSuggestionCount = 20

type ISuggestionService interface {
	Suggest(ctx context.Context, req *show.SuggestReq) (*show.SuggestResp, error)
}

type SuggestionService struct {
	SuggestionCache cache.ISuggestionCacheMapper
	SetMapper       flashcard.IMongoMapper
}

var SuggestionServiceSet = wire.NewSet(
	wire.Struct(new(SuggestionService), "*"),
	wire.Bind(new(ISuggestionService), new(*SuggestionService)),
)

type upstreamSuggestions struct {
	Suggestions []*cache.Suggestion `mapstructure:"suggestions"`
}

// Suggest 先查缓存, 未命中调用AI服务, AI不可用时从用户自己的卡组里找同名词条
func (s *SuggestionService) Suggest(ctx context.Context, req *show.SuggestReq) (*show.SuggestResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	term := strings.TrimSpace(req.Term)
	if term == "" {
		return nil, consts.ErrInvalidParams
	}
	count := req.Count
	if count <= 0 {
		count = consts.DefaultSuggestionCount
	}
	count = min(count, maxSuggestionCount)

	cached, err := s.SuggestionCache.Get(ctx, term)
	switch {
	case err == nil && len(cached) > 0:
		return toSuggestResp(cached, count, show.SourceCache), nil
	case err != nil && !errors.Is(err, cache.ErrCacheMiss):
		log.CtxError(ctx, "读取联想缓存失败: %v", err)
	}

	// 上游总是取满, 缓存对任意 count 都可复用
	if url := suggestURL(); url != "" {
		suggestions, err := fetchSuggestions(ctx, url, term, maxSuggestionCount)
		if err == nil && len(suggestions) > 0 {
			if err = s.SuggestionCache.Set(ctx, term, suggestions); err != nil {
				log.CtxError(ctx, "写入联想缓存失败: %v", err)
			}
			return toSuggestResp(suggestions, count, show.SourceUpstream), nil
		}
		log.CtxError(ctx, "AI联想不可用, 降级到本地卡组, term=%s, err=%v", term, err)
	}

	cards, err := s.SetMapper.FindCardsByTerm(ctx, meta.GetUserId(), term, int64(count))
	if err != nil {
		log.CtxError(ctx, "本地联想失败: %v", err)
		return nil, consts.ErrSuggestion
	}
	fallback := lo.Map(cards, func(c *flashcard.Card, _ int) *cache.Suggestion {
		return &cache.Suggestion{Term: c.Term, Definition: c.Definition}
	})
	return toSuggestResp(fallback, count, show.SourceFallback), nil
}

// fetchSuggestions 上游返回 {"code":0,"data":{"suggestions":[{"term":"","definition":""}]}}
func fetchSuggestions(ctx context.Context, url, term string, count int) ([]*cache.Suggestion, error) {
	resp, err := util.GetHttpClient().Suggest(ctx, url, term, count)
	if err != nil {
		return nil, err
	}
	if code := cast.ToInt(resp["code"]); code != 0 {
		return nil, fmt.Errorf("upstream code %d: %s", code, cast.ToString(resp["msg"]))
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		return nil, errors.New("upstream response has no data")
	}
	var out upstreamSuggestions
	if err = mapstructure.Decode(data, &out); err != nil {
		return nil, err
	}
	return lo.Filter(out.Suggestions, func(s *cache.Suggestion, _ int) bool {
		return s != nil && s.Definition != ""
	}), nil
}

func toSuggestResp(data []*cache.Suggestion, count int, source string) *show.SuggestResp {
	if len(data) > count {
		data = data[:count]
	}
	return &show.SuggestResp{
		Suggestions: lo.Map(data, func(s *cache.Suggestion, _ int) *show.Suggestion {
			return &show.Suggestion{Term: s.Term, Definition: s.Definition}
		}),
		Source: source,
	}
}

func suggestURL() string {
	if c := config.GetConfig(); c != nil {
		return c.Api.SuggestURL
	}
	return ""
}
