package service

import (
	"context"
	"strconv"

	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/catalog"
	"flashcard-show/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type ICatalogService interface {
	ListCatalog(ctx context.Context, req *show.ListCatalogReq) (*show.ListCatalogResp, error)
}

type CatalogService struct {
	CatalogMapper catalog.IMySQLMapper
}

var CatalogServiceSet = wire.NewSet(
	wire.Struct(new(CatalogService), "*"),
	wire.Bind(new(ICatalogService), new(*CatalogService)),
)

// ListCatalog 公共卡组目录, 无需登录
func (s *CatalogService) ListCatalog(ctx context.Context, req *show.ListCatalogReq) (*show.ListCatalogResp, error) {
	entries, total, err := s.CatalogMapper.List(ctx, &catalog.Filter{
		Subject: req.Subject,
		Grades:  req.Grade,
		Page:    req.Page,
		Limit:   req.Limit,
	})
	if err != nil {
		log.CtxError(ctx, "获取公共卡组失败: %v", err)
		return nil, consts.ErrListCatalog
	}

	return &show.ListCatalogResp{
		Sets: lo.Map(entries, func(e *catalog.Entry, _ int) *show.CatalogSet {
			return &show.CatalogSet{
				Id:          strconv.FormatInt(e.ID, 10),
				Subject:     e.Subject,
				Grade:       lo.FromPtr(e.Grade),
				Title:       e.Title,
				Description: lo.FromPtr(e.Description),
				CardCount:   e.CardCount,
			}
		}),
		Total: total,
	}, nil
}
