package service

import (
	"context"
	"strings"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/flashcard"
	"flashcard-show/biz/infrastructure/storage"
	"flashcard-show/biz/infrastructure/util/log"
	"flashcard-show/biz/infrastructure/util/page"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

type IFlashcardService interface {
	CreateSet(ctx context.Context, req *show.CreateSetReq) (*show.CreateSetResp, error)
	GetSet(ctx context.Context, req *show.GetSetReq) (*show.SetInfo, error)
	UpdateSet(ctx context.Context, req *show.UpdateSetReq) (*show.SetInfo, error)
	ListSets(ctx context.Context, req *show.ListSetsReq) (*show.ListSetsResp, error)
}

type FlashcardService struct {
	SetMapper   flashcard.IMongoMapper
	ImageSigner storage.IImageSigner
}

var FlashcardServiceSet = wire.NewSet(
	wire.Struct(new(FlashcardService), "*"),
	wire.Bind(new(IFlashcardService), new(*FlashcardService)),
)

func (s *FlashcardService) CreateSet(ctx context.Context, req *show.CreateSetReq) (*show.CreateSetResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	cards, err := toCards(req.Cards)
	if err != nil {
		return nil, err
	}

	set := &flashcard.Set{
		OwnerID:     meta.GetUserId(),
		Title:       req.Title,
		Description: req.Description,
		Cards:       cards,
	}
	if err = s.SetMapper.Insert(ctx, set); err != nil {
		log.CtxError(ctx, "创建卡组失败: %v", err)
		return nil, consts.ErrCreateSet
	}
	return &show.CreateSetResp{SetId: set.ID.Hex()}, nil
}

func (s *FlashcardService) GetSet(ctx context.Context, req *show.GetSetReq) (*show.SetInfo, error) {
	set, err := s.SetMapper.FindOne(ctx, req.SetId)
	if err != nil {
		log.CtxInfo(ctx, "获取卡组失败: %v", err)
		return nil, consts.ErrNotFound
	}
	return toSetInfo(set, s.ImageSigner)
}

// UpdateSet 已布置的作业保留创建时的题目数, 不受修改影响
func (s *FlashcardService) UpdateSet(ctx context.Context, req *show.UpdateSetReq) (*show.SetInfo, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	set, err := s.SetMapper.FindOne(ctx, req.SetId)
	if err != nil {
		log.CtxInfo(ctx, "获取卡组失败: %v", err)
		return nil, consts.ErrNotFound
	}
	if set.OwnerID != meta.GetUserId() {
		return nil, consts.ErrForbidden
	}

	if req.Title != nil {
		set.Title = *req.Title
	}
	if req.Description != nil {
		set.Description = *req.Description
	}
	if req.Cards != nil {
		if set.Cards, err = toCards(req.Cards); err != nil {
			return nil, err
		}
	}
	if err = s.SetMapper.Update(ctx, set); err != nil {
		log.CtxError(ctx, "更新卡组失败: %v", err)
		return nil, consts.ErrUpdateSet
	}
	return toSetInfo(set, s.ImageSigner)
}

func (s *FlashcardService) ListSets(ctx context.Context, req *show.ListSetsReq) (*show.ListSetsResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	p, size := page.ParsePageOpt(req.PaginationOptions)
	data, total, err := s.SetMapper.FindByOwner(ctx, meta.GetUserId(), p, size)
	if err != nil {
		log.CtxError(ctx, "获取卡组列表失败: %v", err)
		return nil, consts.ErrNotFound
	}

	sets := make([]*show.SetInfo, 0, len(data))
	for _, set := range data {
		info, err := toSetInfo(set, s.ImageSigner)
		if err != nil {
			return nil, err
		}
		sets = append(sets, info)
	}
	return &show.ListSetsResp{
		Sets:  sets,
		Total: total,
	}, nil
}

func toCards(in []*show.Card) ([]*flashcard.Card, error) {
	cards := make([]*flashcard.Card, 0, len(in))
	for _, c := range in {
		if c == nil || strings.TrimSpace(c.Term) == "" || strings.TrimSpace(c.Definition) == "" {
			return nil, consts.ErrInvalidParams
		}
		cards = append(cards, &flashcard.Card{
			Term:       strings.TrimSpace(c.Term),
			Definition: strings.TrimSpace(c.Definition),
			Image:      c.Image,
		})
	}
	return cards, nil
}

// toSetInfo 图片签名失败时保留原始引用
func toSetInfo(set *flashcard.Set, signer storage.IImageSigner) (*show.SetInfo, error) {
	info := &show.SetInfo{}
	if err := copier.Copy(info, set); err != nil {
		return nil, err
	}
	info.Id = set.ID.Hex()
	info.OwnerId = set.OwnerID
	info.Cards = lo.Map(set.Cards, func(c *flashcard.Card, _ int) *show.Card {
		card := &show.Card{Term: c.Term, Definition: c.Definition}
		if c.Image == nil || signer == nil {
			card.Image = c.Image
			return card
		}
		signed, err := signer.SignImage(*c.Image)
		if err != nil {
			log.Error("图片签名失败, ref=%s, err=%v", *c.Image, err)
			signed = *c.Image
		}
		card.Image = lo.ToPtr(signed)
		return card
	})
	return info, nil
}
